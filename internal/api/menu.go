package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"tableside/internal/models"
)

// Catalog reads. The cart only needs these to price items at add time;
// the catalog itself is owned by the remote service.

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetMenuItems(ctx context.Context, limit, offset int) (*models.MenuItemPage, error) {
	var page models.MenuItemPage
	path := fmt.Sprintf("/menu-items?limit=%d&offset=%d", limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/menu-items/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) GetMenuItemsByCategory(ctx context.Context, categoryID int64, limit, offset int) (*models.MenuItemPage, error) {
	var page models.MenuItemPage
	path := fmt.Sprintf("/menu-items/category/%d?limit=%d&offset=%d", categoryID, limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) SearchMenuItems(ctx context.Context, query string, limit, offset int) (*models.MenuItemPage, error) {
	var page models.MenuItemPage
	path := fmt.Sprintf("/menu-items/search?q=%s&limit=%d&offset=%d", url.QueryEscape(query), limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
