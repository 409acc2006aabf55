package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// isStatus checks if the error is an ARM response error with one of the given status codes.
func isStatus(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		for _, code := range codes {
			if respErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}

// IsConflict checks if an error indicates a conflicting operation, for
// example a create racing a delete of the same name.
func IsConflict(err error) bool {
	return isStatus(err, http.StatusConflict)
}

// IsThrottled checks if an error indicates ARM request throttling.
func IsThrottled(err error) bool {
	return isStatus(err, http.StatusTooManyRequests)
}

// ErrorCode returns the ARM error code of err, or "" when err is not an
// ARM response error.
func ErrorCode(err error) string {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.ErrorCode
	}
	return ""
}
