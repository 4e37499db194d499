// Package rtrest talks to the REST 1.0 interface of Request Tracker (RT).
// It hides away all the ugly details of the text protocol:
// Status lines
// Record lists and multi-line values
// Both custom field notations
// Confirmation messages of create and edit requests
// Change-only update requests
//
// The Decode* and Encode* functions work on plain strings and can be used
// without a Client.
package rtrest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	// https://godoc.org/github.com/google/go-querystring/query
	query "github.com/google/go-querystring/query"

	// https://github.com/Sirupsen/logrus
	log "github.com/sirupsen/logrus"

	"golang.org/x/text/language"
)

var logger = log.New()

const (
	restPrefix     = "REST/1.0/"
	defaultTimeout = 10 * time.Second
)

var baseURIPattern = regexp.MustCompile(`^https?://.+$`)

// Options allows you to config the log level, request timeouts and
// request bodies of a Client.
type Options struct {
	LogLevel string
	Timeout  time.Duration
	// Language asked from RT through Accept-Language. The decoders only
	// understand English dates, so this should stay an English variant.
	Language language.Tag
	Encoder  Encoder
	// HTTPClient replaces the default client; Timeout is then ignored.
	HTTPClient *http.Client
}

// Client wraps around the REST calls of a single RT instance.
type Client struct {
	baseURL        *url.URL
	client         *http.Client
	timeout        time.Duration
	acceptLanguage string
	encoder        Encoder

	mu      sync.RWMutex
	session string
}

type response struct {
	status  Status
	known   bool
	session string
	body    string
}

type credentials struct {
	User string `url:"user"`
	Pass string `url:"pass"`
}

type contentArgs struct {
	Content string `url:"content"`
}

// Init checks the options and the base URI of the RT instance,
// e.g. "https://rt.example.com/".
func (c *Client) Init(endpoint string, opts *Options) error {
	loglevel := "info"
	c.timeout = defaultTimeout
	tag := language.AmericanEnglish
	c.client = nil
	if opts != nil {
		if opts.LogLevel != "" {
			loglevel = opts.LogLevel
		}
		if opts.Timeout < 0 {
			return errors.New("Negative timeout specified")
		}
		if opts.Timeout > 0 {
			c.timeout = opts.Timeout
		}
		if opts.Language != language.Und {
			tag = opts.Language
		}
		c.encoder = opts.Encoder
		c.client = opts.HTTPClient
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	c.acceptLanguage = acceptLanguage(tag)

	level, err := log.ParseLevel(loglevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	// Display file & line info
	logger.SetReportCaller(true)

	if !baseURIPattern.MatchString(endpoint) {
		logger.WithFields(log.Fields{
			"url": endpoint,
		}).Error("Base URI is not an http(s) URI")
		return fmt.Errorf("invalid RT base URI: %q", endpoint)
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	api, err := url.Parse(endpoint)
	if err != nil {
		logger.WithFields(log.Fields{
			"url":   endpoint,
			"error": err,
		}).Error("Unable to parse the RT base URI")
		return err
	}

	logger.WithFields(log.Fields{
		"url":      endpoint,
		"loglevel": loglevel,
		"timeout":  c.timeout,
		"language": c.acceptLanguage,
	}).Debug("Initializing an RT client")

	c.baseURL = api
	return nil
}

// acceptLanguage turns en-US into "en-US;q=0.8,en;q=0.6".
func acceptLanguage(tag language.Tag) string {
	base, _ := tag.Base()
	if base.String() == tag.String() {
		return fmt.Sprintf("%s;q=0.8", tag)
	}
	return fmt.Sprintf("%s;q=0.8,%s;q=0.6", tag, base)
}

// Login opens a session. The session cookie is kept by the client and
// sent with every following request.
func (c *Client) Login(ctx context.Context, user, password string) error {
	resp, err := c.postRequest(ctx, restPrefix+"user/"+url.PathEscape(user), credentials{User: user, Pass: password})
	if err != nil {
		return err
	}
	if err := expectStatus("login", resp, StatusOK); err != nil {
		return err
	}
	c.mu.Lock()
	c.session = resp.session
	c.mu.Unlock()
	logger.WithFields(log.Fields{
		"user": user,
	}).Debug("RT session established")
	return nil
}

// Logout ends the session opened by Login.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.postRequest(ctx, restPrefix+"logout", nil)
	if err != nil {
		return err
	}
	if err := expectStatus("logout", resp, StatusOK); err != nil {
		return err
	}
	c.mu.Lock()
	c.session = ""
	c.mu.Unlock()
	return nil
}

// Session returns the cookie of the current session, empty before Login.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession reuses a session cookie obtained earlier.
func (c *Client) SetSession(session string) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
}

func (c *Client) postRequest(ctx context.Context, path string, arguments interface{}) (*response, error) {
	var data string
	if arguments != nil {
		queryArgs, err := query.Values(arguments)
		if err != nil {
			logger.WithFields(log.Fields{
				"error": err,
				"path":  path,
			}).Error("Failed to encode request arguments")
			return nil, err
		}
		data = queryArgs.Encode()
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, wrapError(RequestFailed, err, "invalid request path %q", path)
	}
	endpoint := c.baseURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data))
	if err != nil {
		logger.WithFields(log.Fields{
			"endpoint": endpoint,
			"error":    err,
		}).Error("Failed to construct a HTTP request")
		return nil, wrapError(RequestFailed, err, "building request for %s", endpoint)
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Add("Accept-Language", c.acceptLanguage)
	if session := c.Session(); session != "" {
		req.Header.Add("Cookie", session)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.WithFields(log.Fields{
			"error":    err,
			"endpoint": endpoint,
		}).Error("HTTP Request failed")
		return nil, wrapError(RequestFailed, err, "POST %s", endpoint)
	}
	defer resp.Body.Close()
	logger.WithFields(log.Fields{
		"status":   resp.Status,
		"method":   resp.Request.Method,
		"endpoint": endpoint,
	}).Info("HTTP Request")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithFields(log.Fields{
			"error": err,
		}).Error("Failed to read HTTP response")
		return nil, wrapError(RequestFailed, err, "reading response of %s", endpoint)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newError(RequestFailed, resp.Status, "REST API call failed with HTTP status: %s", resp.Status)
	}

	r := &response{body: string(body)}
	r.status, r.known = ParseStatus(r.body)
	if cookie := resp.Header.Get("Set-Cookie"); cookie != "" {
		r.session = strings.TrimSpace(strings.SplitN(cookie, ";", 2)[0])
	}
	if !r.known || r.status != StatusOK {
		logger.WithFields(log.Fields{
			"endpoint": endpoint,
			"body":     r.body,
		}).Debug("Received error response from RT")
	}
	return r, nil
}

// expectStatus fails unless the RT status of resp is one of accepted.
func expectStatus(call string, resp *response, accepted ...Status) error {
	if resp.known {
		for _, s := range accepted {
			if resp.status == s {
				return nil
			}
		}
	}
	status := "unknown"
	if resp.known {
		status = resp.status.String()
	}
	return newError(UnexpectedStatus, status, "%s request failed with RT status: %s", call, status)
}
