package logx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFrom_FallsBackToPackageLogger(t *testing.T) {
	require.Same(t, L(), From(context.Background()))

	l := zap.NewNop()
	require.Same(t, l, From(Into(context.Background(), l)))
}
