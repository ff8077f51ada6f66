package sim

import "fmt"

// InvalidCapacityError reports a capacity request with a non-positive quantity.
// It is fatal during setup.
type InvalidCapacityError struct {
	Field string
	Value float64
}

func (e *InvalidCapacityError) Error() string {
	return fmt.Sprintf("invalid capacity: %s must be > 0, got %v", e.Field, e.Value)
}

// checkPositive returns an InvalidCapacityError for the first non-positive value, in argument order.
func checkPositive(fields ...capacityField) error {
	for _, f := range fields {
		if f.value <= 0 {
			return &InvalidCapacityError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

type capacityField struct {
	name  string
	value float64
}

// Resources holds the non-CPU capacity dimensions of a host or VM.
type Resources struct {
	RAM       int64 // MB
	Bandwidth int64 // Mbps
	Storage   int64 // MB
}

func (r Resources) fits(req Resources) bool {
	return req.RAM <= r.RAM && req.Bandwidth <= r.Bandwidth && req.Storage <= r.Storage
}

func (r Resources) sub(req Resources) Resources {
	return Resources{RAM: r.RAM - req.RAM, Bandwidth: r.Bandwidth - req.Bandwidth, Storage: r.Storage - req.Storage}
}

// Host is a fixed-capacity physical machine. Capacity fields are immutable after creation;
// only the free counters change, and only through placement.
type Host struct {
	ID          int
	Cores       int
	MIPSPerCore float64
	Capacity    Resources

	freeCores int
	free      Resources
	vms       []*VirtualMachine
}

// FreeCores returns the number of cores not reserved by resident VMs.
func (h *Host) FreeCores() int { return h.freeCores }

// CommittedCores returns the cores reserved by resident VMs.
func (h *Host) CommittedCores() int { return h.Cores - h.freeCores }

// Free returns the unreserved RAM, bandwidth and storage.
func (h *Host) Free() Resources { return h.free }

// VMs returns the VMs resident on this host, in placement order.
func (h *Host) VMs() []*VirtualMachine {
	out := make([]*VirtualMachine, len(h.vms))
	copy(out, h.vms)
	return out
}

func (h *Host) canHost(vm *VirtualMachine) bool {
	return h.freeCores >= vm.Cores && vm.MIPSPerCore <= h.MIPSPerCore && h.free.fits(vm.Resources)
}

// reserve binds vm to h. Callers must check canHost first.
func (h *Host) reserve(vm *VirtualMachine) {
	if !h.canHost(vm) {
		panic(fmt.Sprintf("host %d cannot hold vm %d: free cores %d, requested %d", h.ID, vm.ID, h.freeCores, vm.Cores))
	}
	h.freeCores -= vm.Cores
	h.free = h.free.sub(vm.Resources)
	h.vms = append(h.vms, vm)
	vm.host = h
}

// VirtualMachine is a capacity slice requested from a host. A VM is unplaced until
// an AllocationPolicy binds it; the binding never changes afterwards.
type VirtualMachine struct {
	ID          int
	Cores       int
	MIPSPerCore float64
	Resources

	host      *Host
	scheduler *TimeSharedScheduler
}

// Host returns the owning host, or nil while the VM is unplaced.
func (vm *VirtualMachine) Host() *Host { return vm.host }

// Placed reports whether the VM holds a host reservation.
func (vm *VirtualMachine) Placed() bool { return vm.host != nil }

// TotalMIPS is the VM's aggregate throughput (cores x per-core rate).
func (vm *VirtualMachine) TotalMIPS() float64 { return float64(vm.Cores) * vm.MIPSPerCore }

// Scheduler returns the VM's time-shared job scheduler.
func (vm *VirtualMachine) Scheduler() *TimeSharedScheduler { return vm.scheduler }

// CreateHosts builds n identical hosts with IDs 0..n-1.
func CreateHosts(n int, cfg HostConfig) ([]*Host, error) {
	if err := checkPositive(
		capacityField{"host count", float64(n)},
		capacityField{"host cores", float64(cfg.Cores)},
		capacityField{"host mips per core", cfg.MIPSPerCore},
		capacityField{"host ram", float64(cfg.RAM)},
		capacityField{"host bandwidth", float64(cfg.Bandwidth)},
		capacityField{"host storage", float64(cfg.Storage)},
	); err != nil {
		return nil, err
	}
	res := Resources{RAM: cfg.RAM, Bandwidth: cfg.Bandwidth, Storage: cfg.Storage}
	hosts := make([]*Host, n)
	for i := range hosts {
		hosts[i] = &Host{
			ID:          i,
			Cores:       cfg.Cores,
			MIPSPerCore: cfg.MIPSPerCore,
			Capacity:    res,
			freeCores:   cfg.Cores,
			free:        res,
		}
	}
	return hosts, nil
}

// CreateVMSpecs builds n unplaced VMs with consecutive IDs starting at firstID.
func CreateVMSpecs(firstID, n int, cfg VMConfig) ([]*VirtualMachine, error) {
	if err := checkPositive(
		capacityField{"vm count", float64(n)},
		capacityField{"vm cores", float64(cfg.Cores)},
		capacityField{"vm mips per core", cfg.MIPSPerCore},
		capacityField{"vm ram", float64(cfg.RAM)},
		capacityField{"vm bandwidth", float64(cfg.Bandwidth)},
		capacityField{"vm storage", float64(cfg.Storage)},
	); err != nil {
		return nil, err
	}
	vms := make([]*VirtualMachine, n)
	for i := range vms {
		vm := &VirtualMachine{
			ID:          firstID + i,
			Cores:       cfg.Cores,
			MIPSPerCore: cfg.MIPSPerCore,
			Resources:   Resources{RAM: cfg.RAM, Bandwidth: cfg.Bandwidth, Storage: cfg.Storage},
		}
		vm.scheduler = newTimeSharedScheduler(vm)
		vms[i] = vm
	}
	return vms, nil
}
