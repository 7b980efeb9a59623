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

package protocol

import (
	"fmt"

	liberr "github.com/nabbar/pacmand/errors"
)

// Error codes for the protocol package, covering framing and codec failures
// for every message kind exchanged over the register, request and
// notification pipes.
const (
	// ErrorParamEmpty indicates a required parameter was not provided.
	ErrorParamEmpty liberr.CodeError = iota + liberr.MinPkgProtocol

	// ErrorShortRead indicates a read returned fewer bytes than a frame requires.
	ErrorShortRead

	// ErrorShortWrite indicates a write sent fewer bytes than a frame requires.
	ErrorShortWrite

	// ErrorUnknownKind indicates an opcode byte did not match any known frame kind.
	ErrorUnknownKind

	// ErrorPathTooLong indicates a pipe path exceeds the fixed 40-byte wire field.
	ErrorPathTooLong

	// ErrorCellBufferSize indicates a BOARD frame's cell buffer does not match width*height.
	ErrorCellBufferSize
)

func init() {
	if liberr.ExistInMapMessage(ErrorParamEmpty) {
		panic(fmt.Errorf("error code collision with package pacmand/protocol"))
	}
	liberr.RegisterIdFctMessage(ErrorParamEmpty, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorParamEmpty:
		return "given parameter is empty"
	case ErrorShortRead:
		return "short read while decoding a wire frame"
	case ErrorShortWrite:
		return "short write while encoding a wire frame"
	case ErrorUnknownKind:
		return "unknown wire frame kind"
	case ErrorPathTooLong:
		return "pipe path exceeds the fixed wire field width"
	case ErrorCellBufferSize:
		return "cell buffer length does not match width times height"
	}

	return liberr.NullMessage
}
