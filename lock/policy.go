package lock

import "fmt"

// Policy selects the [RWLocker] implementation used to guard a partition of a
// data structure.
type Policy uint8

const (
	// ReadWritePolicy guards each partition with an [RWLock], allowing
	// concurrent readers of the same partition.
	ReadWritePolicy Policy = iota + 1

	// MutexPolicy guards each partition with a [Mutex], serializing all access
	// to the partition.
	MutexPolicy
)

// NewLock returns a new, unlocked lock of the kind selected by p.
//
// The zero Policy behaves as [ReadWritePolicy].
func (p Policy) NewLock() RWLocker {
	switch p {
	case 0, ReadWritePolicy:
		return &RWLock{}
	case MutexPolicy:
		return &Mutex{}
	default:
		panic(fmt.Sprintf("unrecognized lock policy (%d)", p))
	}
}

// String returns the name of the policy, as accepted by [ParsePolicy].
func (p Policy) String() string {
	switch p {
	case ReadWritePolicy:
		return "rwlock"
	case MutexPolicy:
		return "mutex"
	default:
		return fmt.Sprintf("Policy(%d)", p)
	}
}

// ParsePolicy returns the policy with the given name.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "rwlock":
		return ReadWritePolicy, nil
	case "mutex":
		return MutexPolicy, nil
	default:
		return 0, fmt.Errorf("unrecognized lock policy %q, expected \"rwlock\" or \"mutex\"", name)
	}
}
