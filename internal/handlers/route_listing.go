package handlers

import (
	"html/template"
	"net/http"
	"sort"
	"strings"

	"verbtrainer/internal/observability"

	"github.com/gin-gonic/gin"
)

// RouteInfo represents information about a single route
type RouteInfo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	HandlerName string `json:"handler_name"`
}

// RouteListingHandler serves the index of registered routes at "/"
type RouteListingHandler struct {
	serviceName string
	routes      []RouteInfo
}

// NewRouteListingHandler creates a new route listing handler
func NewRouteListingHandler(serviceName string) *RouteListingHandler {
	return &RouteListingHandler{
		serviceName: serviceName,
		routes:      []RouteInfo{},
	}
}

// CollectRoutes snapshots the engine's routes sorted by path then method
func (h *RouteListingHandler) CollectRoutes(engine *gin.Engine) {
	h.routes = []RouteInfo{}
	for _, route := range engine.Routes() {
		if strings.HasPrefix(route.Path, "/debug/") {
			continue
		}
		h.routes = append(h.routes, RouteInfo{
			Method:      route.Method,
			Path:        route.Path,
			HandlerName: route.Handler,
		})
	}

	sort.Slice(h.routes, func(i, j int) bool {
		if h.routes[i].Path != h.routes[j].Path {
			return h.routes[i].Path < h.routes[j].Path
		}
		return h.routes[i].Method < h.routes[j].Method
	})
}

// Routes returns the collected routes
func (h *RouteListingHandler) Routes() []RouteInfo {
	return h.routes
}

// ServeIndex renders JSON when ?json=true and HTML otherwise
func (h *RouteListingHandler) ServeIndex(c *gin.Context) {
	if c.Query("json") == "true" {
		h.GetRouteListingJSON(c)
		return
	}
	h.GetRouteListingPage(c)
}

// GetRouteListingJSON returns the route listing as JSON
func (h *RouteListingHandler) GetRouteListingJSON(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_route_listing_json")
	defer observability.FinishSpan(span, nil)
	c.JSON(http.StatusOK, h.routes)
}

var routeListingTemplate = template.Must(template.New("routes").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Service}} - Available Routes</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; padding: 20px; color: #212529; }
table { border-collapse: collapse; }
td, th { padding: 6px 12px; border-bottom: 1px solid #dee2e6; text-align: left; }
.path { font-family: Menlo, monospace; color: #6f42c1; }
</style>
</head>
<body>
<h1>{{.Service}}</h1>
<p>{{len .Routes}} routes | <a href="/?json=true">View as JSON</a></p>
<table>
<tr><th>Method</th><th>Path</th><th>Handler</th></tr>
{{range .Routes}}<tr><td>{{.Method}}</td><td class="path">{{if eq .Method "GET"}}<a href="{{.Path}}">{{.Path}}</a>{{else}}{{.Path}}{{end}}</td><td>{{.HandlerName}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// GetRouteListingPage shows all available routes as HTML
func (h *RouteListingHandler) GetRouteListingPage(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "get_route_listing_page")
	defer observability.FinishSpan(span, nil)

	var page strings.Builder
	data := struct {
		Service string
		Routes  []RouteInfo
	}{Service: h.serviceName, Routes: h.routes}
	if err := routeListingTemplate.Execute(&page, data); err != nil {
		HandleAppError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page.String()))
}
