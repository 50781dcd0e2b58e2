package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"edupay-service/internal/core/domain"
	"edupay-service/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	restEndpoint = "/webservice/rest/server.php"

	fnCreateUsers     = "core_user_create_users"
	fnCoursesByField  = "core_course_get_courses_by_field"
	fnManualEnrolment = "enrol_manual_enrol_users"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.LMSClient against the LMS's remote
// procedure-style web-service API: every call is a form-encoded POST with
// a field per parameter, authenticated by a service token.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates an LMS web-service client.
func NewClient(baseURL, token string, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
		log:        log,
	}
}

// APIError is a vendor exception payload returned in place of a result.
type APIError struct {
	Exception string `json:"exception"`
	ErrorCode string `json:"errorcode"`
	Message   string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lms error %s: %s", e.ErrorCode, e.Message)
}

type createdUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type coursesResponse struct {
	Courses []domain.Course `json:"courses"`
}

// CreateUser creates a learner account and returns the LMS-assigned id.
func (c *Client) CreateUser(ctx context.Context, acct ports.NewLMSAccount) (int64, error) {
	if c.token == "" {
		return 0, fmt.Errorf("lms service token is not configured")
	}

	params := url.Values{}
	params.Set("users[0][username]", acct.Username)
	params.Set("users[0][password]", acct.Password)
	params.Set("users[0][firstname]", acct.FirstName)
	params.Set("users[0][lastname]", acct.LastName)
	params.Set("users[0][email]", acct.Email)
	params.Set("users[0][lang]", acct.Locale)

	body, err := c.call(ctx, fnCreateUsers, params)
	if err != nil {
		return 0, err
	}

	var created []createdUser
	if err := decodeOrAPIError(body, &created); err != nil {
		return 0, err
	}
	if len(created) == 0 {
		return 0, fmt.Errorf("lms returned no created user")
	}
	return created[0].ID, nil
}

// CategoryCourses lists every course under the given category. An empty
// list is a valid answer: nothing to enroll in.
func (c *Client) CategoryCourses(ctx context.Context, categoryID int64) ([]domain.Course, error) {
	params := url.Values{}
	params.Set("field", "category")
	params.Set("value", strconv.FormatInt(categoryID, 10))

	body, err := c.call(ctx, fnCoursesByField, params)
	if err != nil {
		return nil, err
	}

	var resp coursesResponse
	if err := decodeOrAPIError(body, &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

// EnrolUser enrolls an account into one course with the given role.
// The vendor signals success with an empty response body; any non-empty
// body is treated as an error payload.
func (c *Client) EnrolUser(ctx context.Context, roleID, accountID, courseID int64) error {
	params := url.Values{}
	params.Set("enrolments[0][roleid]", strconv.FormatInt(roleID, 10))
	params.Set("enrolments[0][userid]", strconv.FormatInt(accountID, 10))
	params.Set("enrolments[0][courseid]", strconv.FormatInt(courseID, 10))

	body, err := c.call(ctx, fnManualEnrolment, params)
	if err != nil {
		return err
	}

	// "null" also counts as empty: some deployments answer the literal.
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var apiErr APIError
	if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Exception != "" {
		return &apiErr
	}
	return fmt.Errorf("lms enrolment returned unexpected payload: %s", truncate(trimmed, 200))
}

// call performs one web-service invocation and returns the raw body.
func (c *Client) call(ctx context.Context, function string, params url.Values) ([]byte, error) {
	params.Set("wstoken", c.token)
	params.Set("wsfunction", function)
	params.Set("moodlewsrestformat", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+restEndpoint, bytes.NewBufferString(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build lms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lms call %s: %w", function, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lms call %s: HTTP %d", function, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read lms response: %w", err)
	}

	c.log.Debug().Str("function", function).Int("bytes", len(body)).Msg("lms call completed")
	return body, nil
}

// decodeOrAPIError decodes the expected result shape, falling back to the
// vendor's exception payload when the body is not the happy shape.
func decodeOrAPIError(body []byte, target interface{}) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Exception != "" {
		return &apiErr
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode lms response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
