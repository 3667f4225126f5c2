package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsFieldMessages(t *testing.T) {
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	in := struct {
		Email  string `json:"email" binding:"required,email"`
		Status string `json:"status" binding:"required,oneof=verified rejected"`
	}{Email: "not-an-email", Status: "maybe"}

	err := v.Struct(in)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be one of: verified, rejected", details["status"])
}

func TestToDetailsRequired(t *testing.T) {
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	in := struct {
		Name string `json:"name" binding:"required"`
	}{}

	details := ToDetails(v.Struct(in))
	assert.Equal(t, "is required", details["name"])
}

func TestToDetailsBadJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	err := json.Unmarshal([]byte(`{"name":`), &dst)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, details)
}

func TestToDetailsFallback(t *testing.T) {
	details := ToDetails(errors.New("boom"))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, details)
}
