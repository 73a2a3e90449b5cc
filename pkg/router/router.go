package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// Router wraps gin with typed handlers. Every request handler receives a
// context carrying the configs, logger, database handle, and token engine of
// the base context, plus the request and the authenticated user id.
type Router struct {
	Inner   gin.IRouter
	baseCtx context.Context
}

func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{Inner: gin.New(), baseCtx: ctx}
}

func (r *Router) Group(pattern string) *Router {
	return &Router{Inner: r.Inner.Group(pattern), baseCtx: r.baseCtx}
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = ginCtx.ShouldBindQuery(&req)
		case http.MethodPost:
			err = ginCtx.ShouldBindJSON(&req)
			// An empty body is a valid zero request.
			if errors.Is(err, io.EOF) {
				err = nil
			}
		}
		if err != nil {
			writeError(ginCtx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			return
		}

		ctx := xcontext.WithHTTPRequest(router.baseCtx, ginCtx.Request)
		ctx = authenticate(ctx, ginCtx.Request)

		resp, err := handler(ctx, &req)
		if err != nil {
			writeError(ginCtx, err)
			return
		}

		ginCtx.JSON(http.StatusOK, newResponse(resp))
	}
}

// authenticate resolves the access token from the bearer header or the token
// cookie. An invalid or missing token leaves the request anonymous; each
// operation decides whether anonymous access is acceptable.
func authenticate(ctx context.Context, r *http.Request) context.Context {
	token := ""
	authorization := r.Header.Get("Authorization")
	if auth, value, found := strings.Cut(authorization, " "); found && auth == "Bearer" {
		token = value
	} else if cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name); err == nil {
		token = cookie.Value
	}

	if token == "" {
		return ctx
	}

	info, err := xcontext.TokenEngine(ctx).Verify(token)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
		return ctx
	}

	return xcontext.WithRequestUserID(ctx, info.ID)
}
