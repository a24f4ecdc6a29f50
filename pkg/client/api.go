package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const rolePatient = "patient"

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserRegistration is the body of a user creation request. Extra carries
// role-specific fields such as specialty or date of birth.
type UserRegistration struct {
	Username string                 `json:"username"`
	Password string                 `json:"password"`
	Email    string                 `json:"email,omitempty"`
	FullName string                 `json:"full_name,omitempty"`
	Phone    string                 `json:"phone,omitempty"`
	Role     string                 `json:"role,omitempty"`
	Extra    map[string]interface{} `json:"-"`
}

func (u UserRegistration) body() map[string]interface{} {
	out := make(map[string]interface{}, len(u.Extra)+6)
	for k, v := range u.Extra {
		out[k] = v
	}
	out["username"] = u.Username
	out["password"] = u.Password
	for k, v := range map[string]string{"email": u.Email, "full_name": u.FullName, "phone": u.Phone, "role": u.Role} {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Auth

func (c *Client) Login(ctx context.Context, creds Credentials) *Result {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: creds})
}

func (c *Client) Logout(ctx context.Context) *Result {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", bearer: true})
}

func (c *Client) CurrentUser(ctx context.Context) *Result {
	return c.do(ctx, request{method: http.MethodGet, path: "/auth/me", bearer: true})
}

// Appointments

func (c *Client) CreateAppointment(ctx context.Context, appointment interface{}) *Result {
	return c.do(ctx, request{method: http.MethodPost, path: "/appointments", body: appointment, bearer: true})
}

func (c *Client) ListAppointments(ctx context.Context, query url.Values) *Result {
	return c.do(ctx, request{method: http.MethodGet, path: "/appointments", query: query, bearer: true})
}

func (c *Client) GetAppointment(ctx context.Context, id string) *Result {
	return c.do(ctx, request{method: http.MethodGet, path: "/appointments/" + url.PathEscape(id), bearer: true})
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, update interface{}) *Result {
	return c.do(ctx, request{method: http.MethodPut, path: "/appointments/" + url.PathEscape(id), body: update, bearer: true})
}

func (c *Client) CancelAppointment(ctx context.Context, id string) *Result {
	return c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/appointments/%s/cancel", url.PathEscape(id)), bearer: true})
}

// Doctors

func (c *Client) ListDoctors(ctx context.Context, query url.Values) *Result {
	return c.do(ctx, request{method: http.MethodGet, path: "/doctors", query: query, bearer: true})
}

func (c *Client) ListDoctorsBySpecialty(ctx context.Context, specialty string) *Result {
	return c.ListDoctors(ctx, url.Values{
		"specialty": {specialty},
		"is_active": {"true"},
	})
}

// Patients

func (c *Client) ListPatients(ctx context.Context, query url.Values) *Result {
	return c.do(ctx, request{method: http.MethodGet, path: "/patients", query: query, bearer: true})
}

func (c *Client) GetPatientByUserID(ctx context.Context, userID string) *Result {
	return c.do(ctx, request{method: http.MethodGet, path: "/patients/user/" + url.PathEscape(userID), bearer: true})
}

// Users

// RegisterUser creates an account. Patients use the public registration
// endpoint; every other role goes through the privileged endpoint carrying
// the stored bearer token.
func (c *Client) RegisterUser(ctx context.Context, user UserRegistration) *Result {
	role := strings.ToLower(strings.TrimSpace(user.Role))
	if role == "" || role == rolePatient {
		return c.do(ctx, request{method: http.MethodPost, path: "/users/register", body: user.body()})
	}
	return c.do(ctx, request{method: http.MethodPost, path: "/users", body: user.body(), bearer: true})
}

// UsernameExists reports false on any failure.
func (c *Client) UsernameExists(ctx context.Context, username string) bool {
	res := c.do(ctx, request{method: http.MethodGet, path: "/users/check-username/" + url.PathEscape(username)})
	return res.Success && res.Exists
}

// Health succeeds on any 2xx response regardless of the body.
func (c *Client) Health(ctx context.Context) *Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return &Result{Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(err, "health check failed")
		return &Result{Error: ErrNetworkMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Result{StatusCode: resp.StatusCode, Error: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	return &Result{StatusCode: resp.StatusCode, Success: true}
}
