package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRespectsBoundaries(t *testing.T) {
	violations, err := collectViolations("..")
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckImport(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		imp    string
		broken bool
	}{
		{
			name:   "order service reaching into customer service",
			file:   "contexts/commerce/order-service/application/commands/create_order.go",
			imp:    "orderflow/contexts/commerce/customer-service/application/queries",
			broken: true,
		},
		{
			name: "order grpc adapter using the customers contract",
			file: "contexts/commerce/order-service/adapters/grpc/customer_directory.go",
			imp:  "orderflow/contracts/customers/v1",
		},
		{
			name:   "shared events importing a service",
			file:   "internal/shared/events/router.go",
			imp:    "orderflow/contexts/commerce/activity-service/ports",
			broken: true,
		},
		{
			name:   "shared events importing the platform",
			file:   "internal/shared/events/router.go",
			imp:    "orderflow/internal/platform/messaging",
			broken: true,
		},
		{
			name: "shared events using the envelope contract",
			file: "internal/shared/events/envelope.go",
			imp:  "orderflow/contracts/gen/events/v1",
		},
		{
			name:   "domain importing gorm",
			file:   "contexts/commerce/order-service/domain/entities/order.go",
			imp:    "gorm.io/gorm",
			broken: true,
		},
		{
			name: "domain errors built on faults",
			file: "contexts/commerce/order-service/domain/errors/errors.go",
			imp:  "orderflow/internal/shared/faults",
		},
		{
			name:   "application importing an adapter",
			file:   "contexts/commerce/customer-service/application/commands/create_customer.go",
			imp:    "orderflow/contexts/commerce/customer-service/adapters/postgres",
			broken: true,
		},
		{
			name: "ports importing the shared kernel",
			file: "contexts/commerce/order-service/ports/ports.go",
			imp:  "orderflow/internal/shared/events",
		},
		{
			name:   "adapter importing the platform",
			file:   "contexts/commerce/order-service/adapters/grpc/customer_directory.go",
			imp:    "orderflow/internal/platform/rpc",
			broken: true,
		},
		{
			name:   "contracts importing module code",
			file:   "contracts/customers/v1/customers.go",
			imp:    "orderflow/internal/shared/faults",
			broken: true,
		},
		{
			name:   "platform importing bootstrap",
			file:   "internal/platform/httpserver/server.go",
			imp:    "orderflow/internal/app/bootstrap",
			broken: true,
		},
		{
			name: "bootstrap wiring services",
			file: "internal/app/bootstrap/bootstrap.go",
			imp:  "orderflow/contexts/commerce/customer-service",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, broken := checkImport(locate(tt.file), tt.imp)
			assert.Equal(t, tt.broken, broken, rule)
		})
	}
}

func TestCollectViolationsReportsFileAndLine(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "contexts", "commerce", "order-service", "domain", "entities")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order.go"), []byte(`package entities

import (
	"time"

	"gorm.io/gorm"
)

var _ = time.Now
var _ *gorm.DB
`), 0o600))

	violations, err := collectViolations(root)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, violation{
		File:   "contexts/commerce/order-service/domain/entities/order.go",
		Line:   6,
		Import: "gorm.io/gorm",
		Rule:   "domain depends only on the standard library and faults",
	}, violations[0])
}
