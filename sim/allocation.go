package sim

import "fmt"

// PlacementFailure is returned when no host can hold a VM. It is recoverable:
// the VM stays unplaced and never receives jobs.
type PlacementFailure struct {
	VM     *VirtualMachine
	Reason string
}

func (f *PlacementFailure) Error() string {
	return fmt.Sprintf("vm %d not placed: %s", f.VM.ID, f.Reason)
}

// AllocationPolicy binds VMs to hosts.
type AllocationPolicy interface {
	// Place reserves capacity for vm on one of hosts and returns that host,
	// or a *PlacementFailure if none qualifies.
	Place(vm *VirtualMachine, hosts []*Host) (*Host, error)
	Name() string
}

// FirstFit scans hosts in slice order and picks the first with enough free capacity.
// Identical inputs always produce identical placements.
type FirstFit struct{}

func (FirstFit) Name() string { return "first-fit" }

func (FirstFit) Place(vm *VirtualMachine, hosts []*Host) (*Host, error) {
	if vm.Placed() {
		return nil, &PlacementFailure{VM: vm, Reason: fmt.Sprintf("already placed on host %d", vm.host.ID)}
	}
	for _, h := range hosts {
		if h.canHost(vm) {
			h.reserve(vm)
			return h, nil
		}
	}
	return nil, &PlacementFailure{VM: vm, Reason: fmt.Sprintf("no host with %d free cores", vm.Cores)}
}
