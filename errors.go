/*
Copyright © 2023 the Seaweed Scale-Up authors.
This file is part of the Seaweed Scale-Up Model.

The Seaweed Scale-Up Model is free software: you can redistribute it and/or
modify it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Seaweed Scale-Up Model is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Seaweed Scale-Up Model.  If not, see <http://www.gnu.org/licenses/>.
*/

package seaweed

import (
	"errors"
	"fmt"
)

// ErrInsufficientProductivity is returned by the calibration functions when
// the reference farm never reaches a stable harvest cycle. It is not fatal:
// callers should skip the configuration that produced it.
var ErrInsufficientProductivity = errors.New("seaweed: no stable harvest cycle; insufficient productivity")

// ConfigurationError reports an invalid or inconsistent model parameter.
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("seaweed: invalid configuration: %s=%g %s", e.Field, e.Value, e.Reason)
}

// DomainError reports arithmetic on a state that is physically invalid,
// such as a non-positive density.
type DomainError struct {
	Quantity string
	Value    float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("seaweed: %s must be > 0 but is %g", e.Quantity, e.Value)
}

// InputShapeError reports a growth rate input that cannot be indexed for
// every simulated day.
type InputShapeError struct {
	Want, Have int
	Reason     string
}

func (e *InputShapeError) Error() string {
	if e.Reason != "" {
		return "seaweed: invalid growth rate input: " + e.Reason
	}
	return fmt.Sprintf("seaweed: growth rate series has %d values but %d days are to be run", e.Have, e.Want)
}

// SimulationError wraps an error with the day on which it occurred.
type SimulationError struct {
	Day     int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("day %d: %v", e.Day, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
