package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/sisu-network/lib/log"
)

const (
	Namespace = "thortx"
)

type Server struct {
	handler       *rpc.Server
	listenAddress string
	srv           *http.Server
}

// NewRpcHandler registers api under the thortx namespace.
func NewRpcHandler(api *ApiHandler) (*rpc.Server, error) {
	handler := rpc.NewServer()
	if err := handler.RegisterName(Namespace, api); err != nil {
		return nil, err
	}

	return handler, nil
}

func NewServer(handler *rpc.Server, port int) *Server {
	return &Server{
		handler:       handler,
		listenAddress: fmt.Sprintf("0.0.0.0:%d", port),
	}
}

func (s *Server) Run() error {
	listener, err := net.Listen("tcp", s.listenAddress)
	if err != nil {
		return err
	}

	s.srv = &http.Server{Handler: s.handler}
	log.Info("Running server at ", s.listenAddress)

	if err := s.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.handler.Stop()
	if s.srv == nil {
		return nil
	}

	return s.srv.Shutdown(ctx)
}
