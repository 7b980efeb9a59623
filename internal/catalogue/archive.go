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
	"os"

	"github.com/nabbar/pacmand/archive"
	liberr "github.com/nabbar/pacmand/errors"
)

// ExtractLevelPack unpacks a packaged level set (--level-pack archive.tgz,
// a deployment convenience not present in the original level-directory-only
// design) into destDir before a Catalogue is opened over it.
func ExtractLevelPack(archivePath, destDir string) liberr.Error {
	f, e := os.Open(archivePath)
	if e != nil {
		return ErrorExtract.Error(e)
	}
	defer func() { _ = f.Close() }()

	if e = os.MkdirAll(destDir, 0o755); e != nil {
		return ErrorExtract.Error(e)
	}

	if e = archive.ExtractAll(f, archivePath, destDir); e != nil {
		return ErrorExtract.Error(e)
	}

	return nil
}
