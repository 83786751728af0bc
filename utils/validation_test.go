package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestValidators(t *testing.T) {
	if v := ValidateStringNotEmpty("  ", "artist"); !v.HasErrors() {
		t.Error("blank string passed ValidateStringNotEmpty")
	}
	if v := ValidateStringNotEmpty("Daft Punk", "artist"); v.HasErrors() {
		t.Errorf("valid string rejected: %s", v.Error())
	}
	if v := ValidateStringLength("ab", "title", 3, 10); !v.HasErrors() {
		t.Error("short string passed ValidateStringLength")
	}
	if v := ValidateStringLength("abcdefghijk", "title", 1, 10); !v.HasErrors() {
		t.Error("long string passed ValidateStringLength")
	}
	if v := ValidateDiscogsReleaseID(-1); !v.HasErrors() {
		t.Error("negative release id passed ValidateDiscogsReleaseID")
	}
	if v := ValidateDiscogsReleaseID(0); v.HasErrors() {
		t.Error("zero (absent) release id must be allowed")
	}
}

func TestValidateRequestAnswersWithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	ok := ValidateRequest(ctx,
		ValidateStringNotEmpty("Daft Punk", "artist"),
		ValidateStringNotEmpty("", "title"),
	)

	if ok {
		t.Fatal("expected validation to fail")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Validation error") || !strings.Contains(body, "title is required") {
		t.Errorf("response missing error details: %s", body)
	}
}

func TestValidateRequestPassesCleanInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	if !ValidateRequest(ctx, ValidateStringNotEmpty("Daft Punk", "artist")) {
		t.Error("clean input rejected")
	}
	if w.Code != http.StatusOK {
		t.Errorf("clean input wrote status %d", w.Code)
	}
}
