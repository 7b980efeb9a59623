/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package board

import (
	"fmt"

	liberr "github.com/nabbar/pacmand/errors"
)

const (
	// ErrorOutOfBounds indicates a coordinate fell outside the grid.
	ErrorOutOfBounds liberr.CodeError = iota + liberr.MinPkgBoard

	// ErrorNoGhost indicates an operation referenced a ghost index that does not exist.
	ErrorNoGhost

	// ErrorEmptyMoveProgram indicates a ghost was built with zero moves.
	ErrorEmptyMoveProgram
)

func init() {
	if liberr.ExistInMapMessage(ErrorOutOfBounds) {
		panic(fmt.Errorf("error code collision with package pacmand/internal/board"))
	}
	liberr.RegisterIdFctMessage(ErrorOutOfBounds, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorOutOfBounds:
		return "coordinate is outside the board grid"
	case ErrorNoGhost:
		return "no ghost at the given index"
	case ErrorEmptyMoveProgram:
		return "ghost move program is empty"
	}

	return liberr.NullMessage
}
