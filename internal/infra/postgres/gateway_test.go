package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unibite/internal/domain/gateway"
)

func TestClassifyError_UndefinedColumnBecomesUnknownField(t *testing.T) {
	driverErr := errors.New(`ERROR: column "owner" of relation "shops" does not exist (SQLSTATE 42703)`)

	classified := classifyError(gateway.CollectionShops, driverErr)

	var unknownField *gateway.UnknownFieldError
	require.ErrorAs(t, classified, &unknownField)
	assert.Equal(t, gateway.CollectionShops, unknownField.Collection)
	assert.Equal(t, "owner", unknownField.Field)
}

func TestClassifyError_TransportErrorWrapsUnavailable(t *testing.T) {
	driverErr := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

	classified := classifyError(gateway.CollectionOrders, driverErr)

	assert.ErrorIs(t, classified, gateway.ErrUnavailable)
	assert.False(t, gateway.IsUnknownField(classified))
}

func TestClassifyError_NilPassesThrough(t *testing.T) {
	assert.NoError(t, classifyError(gateway.CollectionUsers, nil))
}

func TestExtractUnknownField(t *testing.T) {
	field, ok := extractUnknownField(`ERROR: column "join_date" of relation "users" does not exist (SQLSTATE 42703)`)
	require.True(t, ok)
	assert.Equal(t, "join_date", field)

	// The SQLSTATE gates classification; a mention of "column" alone is not
	// a schema rejection.
	_, ok = extractUnknownField(`ERROR: null value in column "name" violates not-null constraint (SQLSTATE 23502)`)
	assert.False(t, ok)
}
