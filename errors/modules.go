/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// Reserved error-code ranges, one block per package. Each block leaves
// room for the package's own sub-ranges (see e.g. config/errors.go's
// MinErrorComponentX constants) before the next package's block begins.
const (
	MinPkgCertificate    = 300
	MinPkgConfig         = 500
	MIN_PKG_IOUtils      = 600
	MinPkgHttpServer     = 1300
	MinPkgHttpServerPool = 1320

	// MinPkgContext is reserved for the server-context registry.
	MinPkgContext = 1600

	// MinPkgDuration is reserved for tempo/cooldown duration parsing.
	MinPkgDuration = 1650

	// MinPkgProtocol is reserved for the wire codec (C2).
	MinPkgProtocol = 1700

	// MinPkgLevelFile is reserved for level/pacman/ghost file parsing.
	MinPkgLevelFile = 1750

	// MinPkgCatalogue is reserved for the level catalogue (C3).
	MinPkgCatalogue = 1800

	// MinPkgBoard is reserved for board state (C4).
	MinPkgBoard = 1850

	// MinPkgQueue is reserved for the bounded request queue (C1).
	MinPkgQueue = 1900

	// MinPkgLifecycle is reserved for the goroutine runner abstraction.
	MinPkgLifecycle = 1950

	// MinPkgSession is reserved for the session table and its worker trio (C5-C8).
	MinPkgSession = 2000

	// MinPkgHost is reserved for the host listener and admin snapshot (C9).
	MinPkgHost = 2100

	// MinPkgAdmin is reserved for the supplementary loopback admin endpoint.
	MinPkgAdmin = 2150

	MinAvailable = 3000

	// MIN_AVAILABLE @Deprecated use MinAvailable constant
	MIN_AVAILABLE = MinAvailable
)
