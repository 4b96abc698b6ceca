// Package httpapi exposes a viewsql.Compiler over HTTP: a thin,
// additive transport independent of the real RPC/proto layer the
// compiler is designed to sit behind. Handlers never execute the SQL
// they return; they decode a request, call the compiler, and write
// the resulting query text back as JSON.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/pivotdb/viewsql"
	"github.com/pivotdb/viewsql/viewconfig"
)

type requestIDKey struct{}

// requestID stamps every request with a UUID, readable back via
// RequestIDFromContext, for correlating a handler's compile log line
// with the HTTP request that triggered it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the UUID requestID stamped on ctx, or
// "" if none is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Server wraps a *viewsql.Compiler with a chi router.
type Server struct {
	compiler *viewsql.Compiler
	router   chi.Router
}

// NewServer builds a Server around compiler, wiring every route
// described by the compiler's public operations.
func NewServer(compiler *viewsql.Compiler) *Server {
	s := &Server{compiler: compiler}

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/tables", s.getHostedTables)
	r.Get("/tables/{table}/schema", s.tableSchema)
	r.Get("/tables/{table}/size", s.tableSize)
	r.Post("/tables/{table}/validate", s.tableValidateExpression)
	r.Post("/tables/{table}/views/{view}", s.tableMakeView)

	r.Get("/views/{view}/data", s.viewGetData)
	r.Get("/views/{view}/schema", s.viewSchema)
	r.Get("/views/{view}/size", s.viewSize)
	r.Get("/views/{view}/columns/size", s.viewColumnSize)
	r.Delete("/views/{view}", s.viewDelete)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type sqlResponse struct {
	SQL string `json:"sql"`
}

func writeSQL(w http.ResponseWriter, r *http.Request, sql string) {
	render.JSON(w, r, sqlResponse{SQL: sql})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var verr *viewsql.Error
	if errors.As(err, &verr) {
		switch verr.Kind {
		case viewsql.InvalidConfig:
			status = http.StatusBadRequest
		case viewsql.ColumnNotFound:
			status = http.StatusNotFound
		case viewsql.UnsupportedOperation:
			status = http.StatusUnprocessableEntity
		}
	}

	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}

func (s *Server) getHostedTables(w http.ResponseWriter, r *http.Request) {
	sql, err := s.compiler.GetHostedTables()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

func (s *Server) tableSchema(w http.ResponseWriter, r *http.Request) {
	sql, err := s.compiler.TableSchema(chi.URLParam(r, "table"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

func (s *Server) tableSize(w http.ResponseWriter, r *http.Request) {
	sql, err := s.compiler.TableSize(chi.URLParam(r, "table"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

type validateRequest struct {
	Expression string `json:"expression"`
}

func (s *Server) tableValidateExpression(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		writeError(w, r, viewsql.NewInvalidConfig(err.Error()))
		return
	}

	sql, err := s.compiler.TableValidateExpression(chi.URLParam(r, "table"), body.Expression)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

func (s *Server) tableMakeView(w http.ResponseWriter, r *http.Request) {
	var cfg viewconfig.ViewConfig
	if err := render.DecodeJSON(r.Body, &cfg); err != nil {
		writeError(w, r, viewsql.NewInvalidConfig(err.Error()))
		return
	}
	if err := viewconfig.ValidateViewConfig(cfg); err != nil {
		writeError(w, r, viewsql.NewInvalidConfig(err.Error()))
		return
	}

	sql, err := s.compiler.TableMakeView(chi.URLParam(r, "table"), chi.URLParam(r, "view"), cfg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

func (s *Server) viewSchema(w http.ResponseWriter, r *http.Request) {
	sql, err := s.compiler.ViewSchema(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

func (s *Server) viewSize(w http.ResponseWriter, r *http.Request) {
	sql, err := s.compiler.ViewSize(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

func (s *Server) viewColumnSize(w http.ResponseWriter, r *http.Request) {
	sql, err := s.compiler.ViewColumnSize(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

func (s *Server) viewDelete(w http.ResponseWriter, r *http.Request) {
	sql, err := s.compiler.ViewDelete(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}

// schemaColumn is one (column, type) entry of a wire schema. Schema
// order matters (it drives view_get_data's default column ordering,
// spec.md §4.7 step 2), so the wire shape is a slice, never a JSON
// object: object key order is not part of the JSON spec and Go's map
// iteration is randomized, so a map[string]string here would silently
// scramble it.
type schemaColumn struct {
	Column string `json:"column"`
	Type   string `json:"type"`
}

// viewGetDataRequest carries the pieces view_get_data needs that don't
// fit in the URL: the view's configuration and schema, since neither
// is retained by the stateless compiler between calls.
type viewGetDataRequest struct {
	Config   viewconfig.ViewConfig `json:"config"`
	Schema   []schemaColumn        `json:"schema"`
	Viewport viewconfig.ViewPort   `json:"viewport"`
}

func (s *Server) viewGetData(w http.ResponseWriter, r *http.Request) {
	var body viewGetDataRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		writeError(w, r, viewsql.NewInvalidConfig(err.Error()))
		return
	}
	if err := viewconfig.ValidateViewPort(body.Viewport); err != nil {
		writeError(w, r, viewsql.NewInvalidConfig(err.Error()))
		return
	}

	schema := viewconfig.NewSchema()
	for _, col := range body.Schema {
		schema.Set(col.Column, viewconfig.ParseColumnType(col.Type))
	}

	sql, err := s.compiler.ViewGetData(chi.URLParam(r, "view"), body.Config, body.Viewport, schema)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSQL(w, r, sql)
}
