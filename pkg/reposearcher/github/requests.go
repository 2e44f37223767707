package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/i18n"
	"github.com/BrandonKowalski/reposearcher/pkg/reposearcher/rx"
)

const (
	opSearch = "search"
	opLogin  = "login"
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string // "message" field of the error body, when present
	RateLimit  bool
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("github: %s", e.Status)
}

type searchResponse struct {
	TotalCount int              `json:"total_count"`
	Items      []repositoryItem `json:"items"`
}

type repositoryItem struct {
	FullName        string `json:"full_name"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	HTMLURL         string `json:"html_url"`
}

type userResponse struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// MostPopularRepositories searches the repositories written in language,
// most starred first.
func (c *Client) MostPopularRepositories(language string) rx.Single[[]reposearcher.Repository] {
	return rx.NewSingle(func(ctx context.Context, done func([]reposearcher.Repository, error)) {
		async(ctx, func(ctx context.Context) ([]reposearcher.Repository, error) {
			return c.search(ctx, language)
		}, done)
	})
}

// Languages returns the configured language list.
func (c *Client) Languages() rx.Single[[]string] {
	return rx.Just(append([]string(nil), c.languages...))
}

// Login checks that token authenticates the account called username.
// The comparison ignores case, as GitHub logins do.
func (c *Client) Login(username, token string) rx.Single[reposearcher.Session] {
	return rx.NewSingle(func(ctx context.Context, done func(reposearcher.Session, error)) {
		async(ctx, func(ctx context.Context) (reposearcher.Session, error) {
			return c.login(ctx, username, token)
		}, done)
	})
}

// SearchURL returns the request URL for a language search.
func (c *Client) SearchURL(language string) string {
	q := url.Values{}
	q.Set("q", "language:"+language)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", strconv.Itoa(c.perPage))
	return c.baseURL + "/search/repositories?" + q.Encode()
}

func (c *Client) search(ctx context.Context, language string) ([]reposearcher.Repository, error) {
	endpoint := c.SearchURL(language)

	ch := c.inflight.DoChan(endpoint, func() (any, error) {
		// The round trip is shared, so one caller leaving must not cancel it.
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.get(reqCtx, endpoint, c.token.Load(), c.cache != nil)
	})

	var body []byte
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, c.fetchError(opSearch, res.Err)
		}
		body = res.Val.([]byte)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, c.fetchError(opSearch, &decodeError{err})
	}

	repos := make([]reposearcher.Repository, 0, len(resp.Items))
	for _, item := range resp.Items {
		repos = append(repos, reposearcher.Repository{
			FullName:    item.FullName,
			Description: item.Description,
			StarsCount:  item.StargazersCount,
			URL:         item.HTMLURL,
		})
	}
	c.logger.Debug("search finished", "language", language, "count", len(repos), "total", resp.TotalCount)
	return repos, nil
}

func (c *Client) login(ctx context.Context, username, token string) (reposearcher.Session, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.get(reqCtx, c.baseURL+"/user", token, false)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			return reposearcher.Session{}, reposearcher.NewFetchError(opLogin, c.localizer.T(i18n.LoginRejected), err)
		}
		return reposearcher.Session{}, c.fetchError(opLogin, err)
	}

	var user userResponse
	if err := json.Unmarshal(body, &user); err != nil {
		return reposearcher.Session{}, c.fetchError(opLogin, &decodeError{err})
	}

	if !strings.EqualFold(user.Login, username) {
		c.logger.Info("token belongs to another account", "username", username, "login", user.Login)
		msg := c.localizer.T(i18n.LoginMismatch, map[string]any{"Login": user.Login, "Username": username})
		return reposearcher.Session{}, reposearcher.NewFetchError(opLogin, msg, reposearcher.ErrUsernameMismatch)
	}

	return reposearcher.Session{Login: user.Login, Name: user.Name, Token: token}, nil
}

// get performs a GET and returns the body of a 2xx answer. With useCache set
// it sends the stored ETag and replays the stored body on 304.
func (c *Client) get(ctx context.Context, endpoint, token string, useCache bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var cached cachedResponse
	var hit bool
	if useCache {
		if cached, hit = c.cache.Get(endpoint); hit && cached.etag != "" {
			req.Header.Set("If-None-Match", cached.etag)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && hit {
		c.logger.Debug("not modified", "url", endpoint)
		return cached.body, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &apiErr) == nil {
			statusErr.Message = apiErr.Message
		}
		statusErr.RateLimit = resp.StatusCode == http.StatusTooManyRequests ||
			(resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0")
		c.logger.Warn("request failed", "url", endpoint, "status", resp.StatusCode, "message", statusErr.Message)
		return nil, statusErr
	}

	if useCache {
		if etag := resp.Header.Get("ETag"); etag != "" {
			c.cache.Add(endpoint, cachedResponse{etag: etag, body: body})
		}
	}
	return body, nil
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return "github: decode response: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// fetchError wraps err in a FetchError whose message suits what went wrong.
func (c *Client) fetchError(op string, err error) *reposearcher.FetchError {
	var (
		statusErr *StatusError
		decodeErr *decodeError
		msg       string
	)
	switch {
	case errors.As(err, &statusErr) && statusErr.RateLimit:
		msg = c.localizer.T(i18n.FetchRateLimited)
	case errors.As(err, &statusErr):
		msg = c.localizer.T(i18n.FetchStatus, map[string]any{"Status": statusErr.Status})
	case errors.As(err, &decodeErr):
		msg = c.localizer.T(i18n.FetchDecode)
	default:
		msg = c.localizer.T(i18n.FetchNetwork)
	}
	c.logger.Error("fetch failed", "op", op, "error", err)
	return reposearcher.NewFetchError(op, msg, err)
}
