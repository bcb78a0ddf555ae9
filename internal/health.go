package internal

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/grpchealth"

	"github.com/kazz187/portfolio/pkg/cerr"
	"github.com/kazz187/portfolio/pkg/docstore"
)

// StoreServiceName is the health service reporting document store availability.
const StoreServiceName = "portfolio.store"

// storeChecker answers grpc.health.v1 checks. The server itself is always
// serving; the store service follows the handle's availability.
type storeChecker struct {
	store *docstore.Handle
}

func newStoreChecker(store *docstore.Handle) *storeChecker {
	return &storeChecker{store: store}
}

func (c *storeChecker) Check(_ context.Context, req *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	switch req.Service {
	case "":
		return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
	case StoreServiceName:
		if c.store.Available() {
			return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
		}
		return &grpchealth.CheckResponse{Status: grpchealth.StatusNotServing}, nil
	default:
		return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("unknown service %q", req.Service), nil)
	}
}

type HealthChecker struct{}

func (hc *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
