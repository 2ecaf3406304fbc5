// Package docstore talks to the remote document API. The engine treats it
// purely as an async key-value document interface keyed by
// (collection, ownerID[, itemID]); no query language beyond get-by-key and
// collection-scoped item CRUD.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/Jaideepo7/Meal-Planner/internal/errors"
	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

// Item is one record of a collection-scoped item list.
type Item struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

type addItemResponse struct {
	ID string `json:"id"`
}

type listItemsResponse struct {
	Items []Item `json:"items"`
}

// Get fetches the single document for owner in collection. Returns
// types.ErrNotFound when the document does not exist.
func Get(ctx context.Context, httpClient *http.Client, baseURL, collection, ownerID string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(ownerID, "ownerId"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/owners/%s/docs/%s", baseURL, ownerID, collection)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewNetworkError("get document", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusNotFound:
		return nil, types.ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, apperrors.NewHTTPError(resp.StatusCode, string(body), "get document")
	}
}

// Set writes the document for owner in collection wholesale. With merge set,
// fields absent from doc are preserved remotely.
func Set(ctx context.Context, httpClient *http.Client, baseURL, collection, ownerID string, doc any, merge bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(ownerID, "ownerId"); err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/v1/owners/%s/docs/%s?merge=%t", baseURL, ownerID, collection, merge)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewNetworkError("set document", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		b, _ := io.ReadAll(resp.Body)
		return apperrors.NewHTTPError(resp.StatusCode, string(b), "set document")
	}
	return nil
}

// ListItems fetches every item of the owner's collection.
func ListItems(ctx context.Context, httpClient *http.Client, baseURL, collection, ownerID string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(ownerID, "ownerId"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/owners/%s/docs/%s/items", baseURL, ownerID, collection)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.NewNetworkError("list items", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, apperrors.NewHTTPError(resp.StatusCode, string(b), "list items")
	}
	var lr listItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}
	return lr.Items, nil
}

// AddItem appends a new item to the owner's collection and returns the
// remotely assigned id.
func AddItem(ctx context.Context, httpClient *http.Client, baseURL, collection, ownerID string, doc any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := types.ValidateIDPresent(ownerID, "ownerId"); err != nil {
		return "", err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v1/owners/%s/docs/%s/items", baseURL, ownerID, collection)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return "", apperrors.NewNetworkError("add item", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return "", apperrors.NewHTTPError(resp.StatusCode, string(b), "add item")
	}
	var ar addItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", err
	}
	if ar.ID == "" {
		return "", fmt.Errorf("add item: remote returned no id")
	}
	return ar.ID, nil
}

// UpdateItem replaces the item document in place by id.
func UpdateItem(ctx context.Context, httpClient *http.Client, baseURL, collection, ownerID, itemID string, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(ownerID, "ownerId"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(itemID, "itemId"); err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/v1/owners/%s/docs/%s/items/%s", baseURL, ownerID, collection, itemID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewNetworkError("update item", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		b, _ := io.ReadAll(resp.Body)
		return apperrors.NewHTTPError(resp.StatusCode, string(b), "update item")
	}
	return nil
}

// DeleteItem removes the item by id. Deleting an already absent item maps
// to types.ErrNotFound so callers can distinguish it from transport trouble.
func DeleteItem(ctx context.Context, httpClient *http.Client, baseURL, collection, ownerID, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(ownerID, "ownerId"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(itemID, "itemId"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/v1/owners/%s/docs/%s/items/%s", baseURL, ownerID, collection, itemID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewNetworkError("delete item", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return types.ErrNotFound
	default:
		b, _ := io.ReadAll(resp.Body)
		return apperrors.NewHTTPError(resp.StatusCode, string(b), "delete item")
	}
}
