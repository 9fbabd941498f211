package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/items-api/internal/apperr"
	"github.com/iliyamo/items-api/internal/middleware"
	"github.com/iliyamo/items-api/internal/model"
	"github.com/iliyamo/items-api/internal/repository"
	"github.com/iliyamo/items-api/internal/task"
)

// ItemStore is the item handlers' view of persistence. Every operation
// is scoped to the owner; a missing or foreign item is
// repository.ErrItemNotFound either way.
type ItemStore interface {
	Create(ctx context.Context, ownerID uint64, title, description string) (model.Item, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Item, error)
	GetForOwner(ctx context.Context, id, ownerID uint64) (model.Item, error)
	UpdateForOwner(ctx context.Context, id, ownerID uint64, title, description *string, isCompleted *bool) (model.Item, error)
	DeleteForOwner(ctx context.Context, id, ownerID uint64) error
}

// ItemHandler bundles dependencies for the item CRUD endpoints. All
// routes it serves sit behind RequireUser.
type ItemHandler struct {
	Items  ItemStore
	Runner *task.Runner
	Tasks  *task.Tasks
}

func NewItemHandler(items ItemStore, runner *task.Runner, tasks *task.Tasks) *ItemHandler {
	return &ItemHandler{Items: items, Runner: runner, Tasks: tasks}
}

// ----- DTOs -----

type itemCreateReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type itemUpdateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

type itemResp struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toItemResp(it model.Item) itemResp {
	return itemResp{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		OwnerID:     it.OwnerID,
		IsCompleted: it.IsCompleted,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func itemID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("item id must be a positive integer")
	}
	return id, nil
}

// Create inserts a new item owned by the current user.
func (h *ItemHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.MissingCredentials()
	}
	var req itemCreateReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return apperr.Validation("title is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Items.Create(ctx, u.ID, req.Title, req.Description)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, toItemResp(it)); err != nil {
		return err
	}
	h.Runner.Go("audit", func(ctx context.Context) error {
		return h.Tasks.LogUserAction(ctx, u.Username, "CREATE_ITEM", "title: "+it.Title)
	})
	return nil
}

// List returns all items of the current user.
func (h *ItemHandler) List(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.MissingCredentials()
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Items.ListByOwner(ctx, u.ID)
	if err != nil {
		return err
	}
	out := make([]itemResp, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResp(it))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one item of the current user.
func (h *ItemHandler) Get(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.MissingCredentials()
	}
	id, err := itemID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Items.GetForOwner(ctx, id, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return apperr.NotFound("", "Item not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, toItemResp(it))
}

// Update applies the provided fields. A transition to completed
// triggers follow-up processing in the background.
func (h *ItemHandler) Update(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.MissingCredentials()
	}
	id, err := itemID(c)
	if err != nil {
		return err
	}
	var req itemUpdateReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return apperr.Validation("title must not be empty")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	before, err := h.Items.GetForOwner(ctx, id, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return apperr.NotFound("", "Item not found")
		}
		return err
	}
	it, err := h.Items.UpdateForOwner(ctx, id, u.ID, req.Title, req.Description, req.IsCompleted)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return apperr.NotFound("", "Item not found")
		}
		return err
	}

	if err := c.JSON(http.StatusOK, toItemResp(it)); err != nil {
		return err
	}
	if !before.IsCompleted && it.IsCompleted {
		h.Runner.Go("item_completion", func(ctx context.Context) error {
			return h.Tasks.ProcessItemCompletion(ctx, it.ID, u.Username, it.Title)
		})
	}
	h.Runner.Go("audit", func(ctx context.Context) error {
		return h.Tasks.LogUserAction(ctx, u.Username, "UPDATE_ITEM",
			fmt.Sprintf("item_id: %d, completed: %t", it.ID, it.IsCompleted))
	})
	return nil
}

// Delete removes one item of the current user.
func (h *ItemHandler) Delete(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.MissingCredentials()
	}
	id, err := itemID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Items.DeleteForOwner(ctx, id, u.ID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return apperr.NotFound("", "Item not found")
		}
		return err
	}
	if err := c.NoContent(http.StatusNoContent); err != nil {
		return err
	}
	h.Runner.Go("audit", func(ctx context.Context) error {
		return h.Tasks.LogUserAction(ctx, u.Username, "DELETE_ITEM",
			fmt.Sprintf("item_id: %d", id))
	})
	return nil
}
