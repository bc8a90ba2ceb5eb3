package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/example/dasturxon/internal/utils"
)

func runRequest(t *testing.T, handler fiber.Handler, path string) int {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Use(Middleware())
	app.Get(path, handler)

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func counterValue(method, path, status string) float64 {
	return testutil.ToFloat64(RequestCounter.WithLabelValues(method, path, status))
}

func TestMiddlewareRecordsSuccessStatus(t *testing.T) {
	status := runRequest(t, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}, "/metrics-ok")

	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if got := counterValue("GET", "/metrics-ok", "200"); got != 1 {
		t.Errorf("counter[200] = %v, want 1", got)
	}
}

func TestMiddlewareRecordsDomainErrorStatus(t *testing.T) {
	status := runRequest(t, func(c *fiber.Ctx) error {
		return utils.NotFoundError("order not found")
	}, "/metrics-missing")

	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if got := counterValue("GET", "/metrics-missing", "404"); got != 1 {
		t.Errorf("counter[404] = %v, want 1", got)
	}
	if got := counterValue("GET", "/metrics-missing", "200"); got != 0 {
		t.Errorf("counter[200] = %v, want 0", got)
	}
}

func TestMiddlewareRecordsFiberErrorStatus(t *testing.T) {
	status := runRequest(t, func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}, "/metrics-bad")

	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if got := counterValue("GET", "/metrics-bad", "400"); got != 1 {
		t.Errorf("counter[400] = %v, want 1", got)
	}
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{utils.ConflictError("already exists"), fiber.StatusConflict},
		{utils.ValidationError(map[string]string{"name": "required"}), fiber.StatusUnprocessableEntity},
		{fiber.ErrTooManyRequests, fiber.StatusTooManyRequests},
		{errTest, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := statusFromError(tc.err); got != tc.want {
			t.Errorf("statusFromError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

type testError struct{}

func (testError) Error() string { return "boom" }

var errTest = testError{}
