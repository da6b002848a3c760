package linux

import "github.com/pkg/errors"

// An Option is a configuration function, which configures the device.
type Option func(*Device) error

// OptDeviceName sets the name advertised when advertising data includes it.
func OptDeviceName(name string) Option {
	return func(d *Device) error {
		d.name = name
		return nil
	}
}

// OptFilterDuplicates reports each device at most once per scan.
func OptFilterDuplicates(f bool) Option {
	return func(d *Device) error {
		d.filterDup = f
		return nil
	}
}

// OptDedupSize sets how many addresses are remembered to filter duplicates.
func OptDedupSize(n int) Option {
	return func(d *Device) error {
		d.dedupSize = n
		return nil
	}
}

// OptQueueSize sets how many pending operations are expected. A longer
// backlog is logged.
func OptQueueSize(n int) Option {
	return func(d *Device) error {
		if n < 1 {
			return errors.Errorf("queue size %d", n)
		}
		d.queueSize = n
		return nil
	}
}
