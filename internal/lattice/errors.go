package lattice

import "errors"

var (
	ErrEmptySystem   = errors.New("lattice: shape contains no sites")
	ErrInvalidSize   = errors.New("lattice: invalid grid size")
	ErrInvalidParams = errors.New("lattice: invalid hamiltonian parameters")
	ErrUnknownParam  = errors.New("lattice: unknown parameter")
	ErrInvalidLead   = errors.New("lattice: invalid lead")
	ErrLeadDetached  = errors.New("lattice: lead interface not inside the system")
	ErrLeadIndex     = errors.New("lattice: lead index out of range")
	ErrSingular      = errors.New("lattice: green's function is singular")
)
