package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHosts_BuildsIdenticalHostsWithFreeCapacity(t *testing.T) {
	hosts, err := CreateHosts(3, DefaultSimConfig().Hosts)
	require.NoError(t, err)
	require.Len(t, hosts, 3)
	for i, h := range hosts {
		assert.Equal(t, i, h.ID)
		assert.Equal(t, 4, h.Cores)
		assert.Equal(t, 4, h.FreeCores())
		assert.Equal(t, 0, h.CommittedCores())
		assert.Equal(t, h.Capacity, h.Free())
		assert.Empty(t, h.VMs())
	}
}

func TestCreateVMSpecs_AreUnplacedWithConsecutiveIDs(t *testing.T) {
	vms, err := CreateVMSpecs(7, 3, DefaultSimConfig().VMs)
	require.NoError(t, err)
	require.Len(t, vms, 3)
	for i, vm := range vms {
		assert.Equal(t, 7+i, vm.ID)
		assert.False(t, vm.Placed())
		assert.Nil(t, vm.Host())
		assert.Equal(t, 20000.0, vm.TotalMIPS())
		require.NotNil(t, vm.Scheduler())
		assert.Empty(t, vm.Scheduler().Running())
	}
}

func TestCapacityConstructors_NonPositiveQuantity_ReturnsInvalidCapacityError(t *testing.T) {
	good := DefaultSimConfig()
	tests := []struct {
		name  string
		build func() error
		field string
	}{
		{"zero hosts", func() error { _, err := CreateHosts(0, good.Hosts); return err }, "host count"},
		{"zero host cores", func() error {
			h := good.Hosts
			h.Cores = 0
			_, err := CreateHosts(1, h)
			return err
		}, "host cores"},
		{"negative host ram", func() error {
			h := good.Hosts
			h.RAM = -1
			_, err := CreateHosts(1, h)
			return err
		}, "host ram"},
		{"zero vm mips", func() error {
			v := good.VMs
			v.MIPSPerCore = 0
			_, err := CreateVMSpecs(0, 1, v)
			return err
		}, "vm mips per core"},
		{"zero vm storage", func() error {
			v := good.VMs
			v.Storage = 0
			_, err := CreateVMSpecs(0, 1, v)
			return err
		}, "vm storage"},
		{"zero job length", func() error { _, err := NewJob(0, 0, 1, nil); return err }, "job length"},
		{"zero job cores", func() error { _, err := NewJob(0, 10, 0, nil); return err }, "job cores"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build()
			var capErr *InvalidCapacityError
			require.True(t, errors.As(err, &capErr), "expected InvalidCapacityError, got %v", err)
			assert.Equal(t, tc.field, capErr.Field)
		})
	}
}
