package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "fake_db",
		Available: []string{"duckdb", "sqlite"},
	}

	msg := err.Error()

	assert.NotEmpty(t, msg, "error message should not be empty")
	assert.Contains(t, msg, "fake_db", "error should mention the unknown type 'fake_db'")
	assert.Contains(t, msg, "salescope.yaml", "error should mention config file")
}

func TestRegister(t *testing.T) {
	Register("test_adapter_internal", func() Adapter { return nil })

	assert.True(t, IsRegistered("test_adapter_internal"), "test_adapter_internal should be registered after Register()")

	factory, ok := Get("test_adapter_internal")
	assert.True(t, ok, "Get(test_adapter_internal) should return true after Register()")
	assert.NotNil(t, factory, "Get(test_adapter_internal) should return non-nil factory")
}

func TestNew_EmptyType(t *testing.T) {
	_, err := New(Config{Type: ""})
	require.Error(t, err, "New with empty type should fail")
	assert.Equal(t, "adapter type not specified", err.Error())
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(Config{Type: "nonexistent_engine"})
	require.Error(t, err)

	var unknownErr *UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "nonexistent_engine", unknownErr.Type)
}

func TestListAdapters_Sorted(t *testing.T) {
	Register("zzz_test", func() Adapter { return nil })
	Register("aaa_test", func() Adapter { return nil })

	names := ListAdapters()
	require.GreaterOrEqual(t, len(names), 2)
	assert.IsIncreasing(t, names, "adapter names should be sorted")
}
