/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package azure

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/suparena/tablestore/atom"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/storagemodels"
	"github.com/suparena/tablestore/tablewriter"
)

const (
	storageVersion = "2009-09-19"
	atomMediaType  = "application/atom+xml"
	methodMerge    = "MERGE"
)

// TableDataStore implements datastore.DataStore[*storagemodels.GenericEntity]
// by writing Atom entries to a table storage account.
type TableDataStore struct {
	account  string
	key      []byte
	endpoint *url.URL
	table    string

	client   *http.Client
	writer   *tablewriter.Writer
	handlers []atom.WritingEntityHandler
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a TableDataStore.
type Option func(*TableDataStore)

// WithHTTPClient sets the client requests are sent with.
func WithHTTPClient(c *http.Client) Option {
	return func(d *TableDataStore) {
		d.client = c
	}
}

// WithEndpoint overrides the account's table endpoint, e.g. for an emulator.
func WithEndpoint(endpoint *url.URL) Option {
	return func(d *TableDataStore) {
		d.endpoint = endpoint
	}
}

// WithWriter sets the writer that fills each entry's properties.
func WithWriter(w *tablewriter.Writer) Option {
	return func(d *TableDataStore) {
		d.writer = w
	}
}

// WithWritingEntityHandler adds a handler run after the writer on every entry.
func WithWritingEntityHandler(h atom.WritingEntityHandler) Option {
	return func(d *TableDataStore) {
		d.handlers = append(d.handlers, h)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *TableDataStore) {
		d.logger = logger
	}
}

// WithClock sets the clock used for request dates and entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *TableDataStore) {
		d.now = now
	}
}

// NewTableDataStore constructs a TableDataStore for one table of an account.
// accountKey is the base64 shared key of the account.
func NewTableDataStore(account, accountKey, table string, opts ...Option) (*TableDataStore, error) {
	if account == "" {
		return nil, errors.NewValidationError("account", "must not be empty")
	}
	if table == "" {
		return nil, errors.NewValidationError("table", "must not be empty")
	}
	key, err := base64.StdEncoding.DecodeString(accountKey)
	if err != nil {
		return nil, errors.NewValidationError("accountKey", fmt.Sprintf("not base64: %v", err))
	}

	d := &TableDataStore{
		account: account,
		key:     key,
		table:   table,
		client:  http.DefaultClient,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.endpoint == nil {
		d.endpoint = &url.URL{Scheme: "https", Host: account + ".table.core.windows.net"}
	}
	if d.writer == nil {
		d.writer = tablewriter.NewWriter(tablewriter.WithLogger(d.logger))
	}
	return d, nil
}

// Insert creates a new entity.
func (d *TableDataStore) Insert(ctx context.Context, entity *storagemodels.GenericEntity) error {
	return d.write(ctx, http.MethodPost, d.tableURL(), "", entity)
}

// Update replaces an existing entity.
func (d *TableDataStore) Update(ctx context.Context, entity *storagemodels.GenericEntity) error {
	u := d.entityURL(entity.PartitionKey(), entity.RowKey())
	return d.write(ctx, http.MethodPut, u, u.String(), entity)
}

// Merge adds or replaces properties of an existing entity.
func (d *TableDataStore) Merge(ctx context.Context, entity *storagemodels.GenericEntity) error {
	u := d.entityURL(entity.PartitionKey(), entity.RowKey())
	return d.write(ctx, methodMerge, u, u.String(), entity)
}

// Delete removes an entity regardless of its version.
func (d *TableDataStore) Delete(ctx context.Context, partitionKey, rowKey string) error {
	req, err := d.newRequest(ctx, http.MethodDelete, d.entityURL(partitionKey, rowKey), nil)
	if err != nil {
		return err
	}
	req.Header.Set("If-Match", "*")
	return d.do(req, "delete", partitionKey+"|"+rowKey)
}

func (d *TableDataStore) write(ctx context.Context, method string, u *url.URL, id string, entity *storagemodels.GenericEntity) error {
	if entity == nil {
		return errors.NewValidationError("entity", "must not be nil")
	}
	body, err := d.Render(entity, id)
	if err != nil {
		return err
	}

	req, err := d.newRequest(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", atomMediaType)
	if method != http.MethodPost {
		req.Header.Set("If-Match", "*")
	}
	return d.do(req, strings.ToLower(method), entity.PartitionKey()+"|"+entity.RowKey())
}

// Render builds the Atom entry for entity, raising the writing-entity event
// for the writer and any extra handlers, and returns the serialized document.
func (d *TableDataStore) Render(entity *storagemodels.GenericEntity, id string) ([]byte, error) {
	ev := &atom.WritingEntityEvent{Data: atom.NewEntry(id, d.now()), Entity: entity}
	if err := d.writer.HandleWritingEntity(ev); err != nil {
		return nil, err
	}
	for _, h := range d.handlers {
		if err := h(ev); err != nil {
			return nil, err
		}
	}
	return atom.Marshal(ev.Data)
}

func (d *TableDataStore) tableURL() *url.URL {
	u := *d.endpoint
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + d.table
	return &u
}

// entityURL addresses one entity. The key predicate keeps its parentheses
// and quotes literal; only characters invalid in a path are escaped.
func (d *TableDataStore) entityURL(partitionKey, rowKey string) *url.URL {
	u := *d.endpoint
	base := strings.TrimSuffix(u.Path, "/")
	rawBase := strings.TrimSuffix(u.EscapedPath(), "/")

	pk, rk := quoteKey(partitionKey), quoteKey(rowKey)
	u.Path = fmt.Sprintf("%s/%s(PartitionKey='%s',RowKey='%s')", base, d.table, pk, rk)
	u.RawPath = fmt.Sprintf("%s/%s(PartitionKey='%s',RowKey='%s')",
		rawBase, escapeKey(d.table), escapeKey(pk), escapeKey(rk))
	return &u
}

// escapeKey percent-escapes s for a path, leaving quotes and parentheses as is.
func escapeKey(s string) string {
	return keyUnescaper.Replace(url.PathEscape(s))
}

var keyUnescaper = strings.NewReplacer("%27", "'", "%28", "(", "%29", ")")

// quoteKey doubles single quotes, the key literal escape of the protocol.
func quoteKey(k string) string {
	return strings.ReplaceAll(k, "'", "''")
}

func (d *TableDataStore) newRequest(ctx context.Context, method string, u *url.URL, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/atom+xml,application/xml")
	req.Header.Set("DataServiceVersion", "1.0;NetFx")
	req.Header.Set("MaxDataServiceVersion", "2.0;NetFx")
	req.Header.Set("x-ms-version", storageVersion)
	signSharedKeyLite(req, d.account, d.key, d.now())
	return req, nil
}

func (d *TableDataStore) do(req *http.Request, op, key string) error {
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		d.logger.Info("table write", "op", op, "table", d.table, "key", key, "status", resp.StatusCode)
		return nil
	}

	se := readServiceError(resp)
	d.logger.Warn("table write failed", "op", op, "table", d.table, "key", key,
		"status", resp.StatusCode, "code", se.Code)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", se, errors.NewNotFoundError(d.table, key))
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", se, errors.NewAlreadyExistsError(d.table, key))
	case http.StatusPreconditionFailed:
		return fmt.Errorf("%s: %w", se, errors.NewConditionFailedError(op, se.Message))
	}
	return fmt.Errorf("%s %s failed with status %d: %s", op, d.table, resp.StatusCode, se)
}

// ServiceError is the error body returned by the table service.
type ServiceError struct {
	Code    string `xml:"code"`
	Message string `xml:"message"`
}

func (e ServiceError) String() string {
	if e.Code == "" {
		return "table service error"
	}
	return fmt.Sprintf("%s: %s", e.Code, strings.TrimSpace(e.Message))
}

func readServiceError(resp *http.Response) ServiceError {
	var se ServiceError
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return se
	}
	_ = xml.Unmarshal(body, &se)
	return se
}
