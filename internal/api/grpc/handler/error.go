package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/userkeeper-server/internal/apierror"
)

func handleError(err error) error {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return status.Error(apiErr.GRPCCode(), apiErr.Message)
	}

	return status.Error(codes.Internal, "internal server error")
}
