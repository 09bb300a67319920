package api

import (
	"context"

	"github.com/Janishnehyan03/chs-stationary-client-sub000/internal/models"
)

// UserInput is the create/update payload for students and teachers.
// Zero-valued optional fields are omitted so a PATCH only touches what the
// form submitted.
type UserInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email,omitempty"`
	Username string  `json:"username,omitempty"`
	Password string  `json:"password,omitempty"`
	ClassID  string  `json:"class,omitempty"`
	Balance  float64 `json:"balance,omitempty"`
}

// ListUsers fetches all users regardless of role (admin screens).
func (c *Client) ListUsers(ctx context.Context, p ListParams) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/users", p.Values(), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListStudents fetches student users, optionally filtered by class via
// ListParams.Filter.
func (c *Client) ListStudents(ctx context.Context, p ListParams) ([]models.User, error) {
	var students []models.User
	if err := c.get(ctx, "/students", p.Values(), &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) CreateStudent(ctx context.Context, in UserInput) (*models.User, error) {
	var created models.User
	if err := c.post(ctx, "/students", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateStudent(ctx context.Context, id string, in UserInput) error {
	return c.patch(ctx, "/students/"+id, in, nil)
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.delete(ctx, "/students/"+id)
}

// BulkCreateStudents submits a confirmed import preview in one request.
// The backend applies the whole batch or rejects it; on failure the caller
// keeps its preview so the user can retry.
func (c *Client) BulkCreateStudents(ctx context.Context, in []UserInput) error {
	return c.post(ctx, "/students/bulk", in, nil)
}

func (c *Client) ListTeachers(ctx context.Context, p ListParams) ([]models.User, error) {
	var teachers []models.User
	if err := c.get(ctx, "/teachers", p.Values(), &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (c *Client) CreateTeacher(ctx context.Context, in UserInput) (*models.User, error) {
	var created models.User
	if err := c.post(ctx, "/teachers", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTeacher(ctx context.Context, id string, in UserInput) error {
	return c.patch(ctx, "/teachers/"+id, in, nil)
}

func (c *Client) DeleteTeacher(ctx context.Context, id string) error {
	return c.delete(ctx, "/teachers/"+id)
}

func (c *Client) BulkCreateTeachers(ctx context.Context, in []UserInput) error {
	return c.post(ctx, "/teachers/bulk", in, nil)
}

// ListPermissions returns the permission catalog used by the grants screen.
func (c *Client) ListPermissions(ctx context.Context) ([]models.Permission, error) {
	var perms []models.Permission
	if err := c.get(ctx, "/permissions", nil, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// SetUserPermissions replaces a user's grant list with the given permission
// ids.
func (c *Client) SetUserPermissions(ctx context.Context, userID string, permissionIDs []string) error {
	body := map[string]any{"permissions": permissionIDs}
	return c.patch(ctx, "/users/"+userID, body, nil)
}
