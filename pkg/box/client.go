package box

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/boxsdk/internal/session"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// Client is the entry point for resource handles. It is safe for concurrent
// use when its Session is.
type Client struct {
	session types.Session
}

type options struct {
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// Option configures NewClient.
type Option func(*options)

// WithHTTPClient sends requests through c instead of a client built from the
// Config timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger logs each request to l. Without it nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// NewClient returns a Client talking HTTP to cfg.APIURL.
func NewClient(cfg types.Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	var sessOpts []session.Option
	if o.httpClient != nil {
		sessOpts = append(sessOpts, session.WithHTTPClient(o.httpClient))
	}
	if o.logger != nil {
		sessOpts = append(sessOpts, session.WithLogger(o.logger))
	}
	s, err := session.New(cfg, sessOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{session: s}, nil
}

// NewClientWithSession returns a Client that sends every request through s.
func NewClientWithSession(s types.Session) *Client {
	return &Client{session: s}
}

// Session returns the underlying session.
func (c *Client) Session() types.Session {
	return c.session
}

// Comment returns a handle for the comment with the given id. No request is
// made.
func (c *Client) Comment(id string) *Comment {
	return newComment(c.session, id)
}

// AddComment creates a top-level comment on item, usually a file.
func (c *Client) AddComment(ctx context.Context, item types.Item, message string) (*Comment, error) {
	return createComment(ctx, c.session, item, message)
}

// MetadataTemplate returns a handle for the template identified by scope
// and key. No request is made.
func (c *Client) MetadataTemplate(scope, templateKey string) *MetadataTemplate {
	return newMetadataTemplate(c.session, scope, templateKey)
}

// CreateMetadataTemplate creates a template and returns its handle.
func (c *Client) CreateMetadataTemplate(ctx context.Context, req types.TemplateCreate) (*MetadataTemplate, error) {
	if req.Fields == nil {
		req.Fields = []types.TemplateField{}
	}
	var raw map[string]any
	if err := c.session.Post(ctx, typeURL(c.session, types.ItemTypeMetadataTemplate)+"/schema", req, &raw); err != nil {
		return nil, err
	}
	return templateFromResponse(c.session, raw)
}
