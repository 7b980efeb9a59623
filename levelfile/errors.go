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

package levelfile

import (
	"fmt"

	liberr "github.com/nabbar/pacmand/errors"
)

const (
	// ErrorFileOpen indicates a level, pacman or ghost file could not be opened.
	ErrorFileOpen liberr.CodeError = iota + liberr.MinPkgLevelFile

	// ErrorMissingDimensions indicates a level file never set DIM.
	ErrorMissingDimensions

	// ErrorGridSize indicates the trailing grid did not carry height rows of width columns.
	ErrorGridSize

	// ErrorTooManyGhosts indicates a MON directive named more ghosts than MaxGhostsPerLevel.
	ErrorTooManyGhosts

	// ErrorTooManyMoves indicates a ghost file's move program exceeded MaxMovesPerGhost.
	ErrorTooManyMoves

	// ErrorNoLevels indicates a directory contains no .lvl files.
	ErrorNoLevels

	// ErrorLevelIndex indicates an index was out of range for a directory's sorted level list.
	ErrorLevelIndex
)

func init() {
	if liberr.ExistInMapMessage(ErrorFileOpen) {
		panic(fmt.Errorf("error code collision with package pacmand/levelfile"))
	}
	liberr.RegisterIdFctMessage(ErrorFileOpen, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorFileOpen:
		return "cannot open level file"
	case ErrorMissingDimensions:
		return "level file is missing a DIM directive"
	case ErrorGridSize:
		return "level file grid does not match its declared dimensions"
	case ErrorTooManyGhosts:
		return "level file names more ghosts than allowed"
	case ErrorTooManyMoves:
		return "ghost file move program is too long"
	case ErrorNoLevels:
		return "no .lvl files found in level directory"
	case ErrorLevelIndex:
		return "level index out of range"
	}

	return liberr.NullMessage
}
