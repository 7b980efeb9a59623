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

package catalogue

import (
	"fmt"

	liberr "github.com/nabbar/pacmand/errors"
)

const (
	// ErrorWatch indicates the fsnotify watcher could not be installed on the level directory.
	ErrorWatch liberr.CodeError = iota + liberr.MinPkgCatalogue

	// ErrorLevelIndex indicates an index was out of range for the catalogue's level count.
	ErrorLevelIndex

	// ErrorExtract indicates a packaged level set could not be unpacked.
	ErrorExtract
)

func init() {
	if liberr.ExistInMapMessage(ErrorWatch) {
		panic(fmt.Errorf("error code collision with package pacmand/internal/catalogue"))
	}
	liberr.RegisterIdFctMessage(ErrorWatch, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorWatch:
		return "cannot watch level directory for changes"
	case ErrorLevelIndex:
		return "level index out of range"
	case ErrorExtract:
		return "cannot extract packaged level set"
	}

	return liberr.NullMessage
}
