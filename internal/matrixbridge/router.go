// Package matrixbridge relays matrix frames from the ticker to the LED
// matrix MCU through arduino-router.
package matrixbridge

import (
	"fmt"
	"net"
	"net/rpc"

	msgpackrpc "github.com/hashicorp/net-rpc-msgpackrpc"
	"github.com/rs/zerolog"

	"github.com/aristath/stockticker/internal/modules/display"
)

// setFrameMethod is the RPC the matrix sketch exposes.
const setFrameMethod = "setMatrixFrame"

// Caller is the subset of *rpc.Client the router needs.
type Caller interface {
	Call(serviceMethod string, args interface{}, reply interface{}) error
	Close() error
}

// Router wraps the RPC client for MCU communication
type Router struct {
	client Caller
	log    zerolog.Logger
}

// Dial connects to arduino-router at addr.
func Dial(addr string, log zerolog.Logger) (*Router, error) {
	log.Info().Str("addr", addr).Msg("Connecting to arduino-router")

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to router: %w", err)
	}

	client := rpc.NewClientWithCodec(msgpackrpc.NewClientCodec(conn))
	log.Info().Msg("Connected to arduino-router")

	return NewRouter(client, log), nil
}

// NewRouter wraps an existing client.
func NewRouter(client Caller, log zerolog.Logger) *Router {
	return &Router{
		client: client,
		log:    log.With().Str("component", "router").Logger(),
	}
}

// SetFrame sends one matrix frame. Arguments are positional since the
// sketch cannot decode maps.
func (r *Router) SetFrame(frame display.Frame) error {
	args := []interface{}{
		frame.Pattern.String(),
		frame.Color.R,
		frame.Color.G,
		frame.Color.B,
		frame.Brightness,
		frame.Gainers,
		frame.Losers,
	}

	var reply interface{}
	if err := r.client.Call(setFrameMethod, args, &reply); err != nil {
		r.log.Debug().Err(err).Str("method", setFrameMethod).Msg("RPC call failed")
		return err
	}
	return nil
}

// Close closes the router connection.
func (r *Router) Close() error {
	return r.client.Close()
}
