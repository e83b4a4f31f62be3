package api

import "github.com/okian/combine/pkg/logger"

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRoutes attaches extra route groups after the API routes.
func WithRoutes(fns ...RegisterFunc) Option {
	return func(s *Server) {
		s.extra = append(s.extra, fns...)
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
