package domain

// Response standardizes API responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// QuoteMeta accompanies a quote response.
type QuoteMeta struct {
	SkippedLines []LineError `json:"skippedLines"`
}

// CheckoutGuard is the verdict for the "proceed to checkout" action.
type CheckoutGuard struct {
	Allowed bool   `json:"allowed"`
	Message string `json:"message,omitempty"`
}
