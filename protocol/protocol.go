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

// Package protocol implements the fixed-width, little-endian wire codec
// shared by the register, request and notification pipes: CONNECT,
// CONNECT-ACK, PLAY, DISCONNECT and BOARD frames. Every frame is
// length-fixed; a short read or write on any of them is a fatal error for
// the session that produced it.
package protocol

import (
	"encoding/binary"
	"io"
)

// Kind identifies a wire frame's opcode byte.
type Kind uint8

const (
	// KindConnect is sent by a client on the register pipe to request a session.
	KindConnect Kind = 1

	// KindConnectAck is sent by the server on the notification pipe in reply to KindConnect.
	KindConnectAck Kind = 1

	// KindDisconnect is sent by a client on the request pipe to end its session.
	KindDisconnect Kind = 2

	// KindPlay is sent by a client on the request pipe carrying one game command.
	KindPlay Kind = 3

	// KindBoard is sent by the server on the notification pipe carrying a board snapshot.
	KindBoard Kind = 4
)

// PathFieldWidth is the fixed width, in bytes, of a pipe-path field on the wire.
const PathFieldWidth = 40

// Cell glyphs, per the BOARD frame cell-encoding contract.
const (
	CellWall         byte = '#'
	CellPacman       byte = 'C'
	CellGhost        byte = 'M'
	CellGhostCharged byte = 'G'
	CellDot          byte = '.'
	CellPortal       byte = '@'
	CellEmpty        byte = ' '
)

// Connect is the CONNECT frame: client_id plus the two pipe paths the
// client created for this session.
type Connect struct {
	ClientID   int32
	ReqPath    string
	NotifPath  string
}

// ConnectAck is the CONNECT-ACK frame.
type ConnectAck struct {
	Result uint8
}

// Play is the PLAY frame: a single uppercase command byte.
type Play struct {
	Command byte
}

// Board is the BOARD frame: a full snapshot of one session's game state.
type Board struct {
	Width       int32
	Height      int32
	Tempo       int32
	Victory     int32
	GameOver    int32
	TotalPoints int32
	Cells       []byte
}

func putPath(buf []byte, s string) error {
	if len(s) > PathFieldWidth {
		return ErrorPathTooLong.Error()
	}
	clear(buf)
	copy(buf, s)
	return nil
}

func getPath(buf []byte) string {
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}

// WriteConnect encodes and writes a CONNECT frame.
func WriteConnect(w io.Writer, c Connect) error {
	buf := make([]byte, 1+4+PathFieldWidth+PathFieldWidth)
	buf[0] = byte(KindConnect)
	binary.LittleEndian.PutUint32(buf[1:5], uint32(c.ClientID))

	if err := putPath(buf[5:5+PathFieldWidth], c.ReqPath); err != nil {
		return err
	}
	if err := putPath(buf[5+PathFieldWidth:], c.NotifPath); err != nil {
		return err
	}

	return writeFull(w, buf)
}

// ReadConnect reads and decodes a CONNECT frame. The caller has already
// consumed the opcode byte and determined it is KindConnect.
func ReadConnect(r io.Reader) (Connect, error) {
	buf := make([]byte, 4+PathFieldWidth+PathFieldWidth)
	if err := readFull(r, buf); err != nil {
		return Connect{}, err
	}

	return Connect{
		ClientID:  int32(binary.LittleEndian.Uint32(buf[0:4])),
		ReqPath:   getPath(buf[4 : 4+PathFieldWidth]),
		NotifPath: getPath(buf[4+PathFieldWidth:]),
	}, nil
}

// WriteConnectAck encodes and writes a CONNECT-ACK frame.
func WriteConnectAck(w io.Writer, a ConnectAck) error {
	buf := []byte{byte(KindConnectAck), a.Result}
	return writeFull(w, buf)
}

// ReadConnectAck reads and decodes a CONNECT-ACK frame, including its opcode byte.
func ReadConnectAck(r io.Reader) (ConnectAck, error) {
	buf := make([]byte, 2)
	if err := readFull(r, buf); err != nil {
		return ConnectAck{}, err
	}
	if Kind(buf[0]) != KindConnectAck {
		return ConnectAck{}, ErrorUnknownKind.Error()
	}
	return ConnectAck{Result: buf[1]}, nil
}

// WritePlay encodes and writes a PLAY frame.
func WritePlay(w io.Writer, p Play) error {
	buf := []byte{byte(KindPlay), p.Command}
	return writeFull(w, buf)
}

// WriteDisconnect encodes and writes a DISCONNECT frame.
func WriteDisconnect(w io.Writer) error {
	buf := []byte{byte(KindDisconnect)}
	return writeFull(w, buf)
}

// RequestFrame is the decoded result of reading one frame off a session's
// request pipe: either a Play command or a disconnect request.
type RequestFrame struct {
	Kind Kind
	Play Play
}

// ReadRequestFrame reads one PLAY or DISCONNECT frame, including its opcode byte.
func ReadRequestFrame(r io.Reader) (RequestFrame, error) {
	op := make([]byte, 1)
	if err := readFull(r, op); err != nil {
		return RequestFrame{}, err
	}

	switch Kind(op[0]) {
	case KindDisconnect:
		return RequestFrame{Kind: KindDisconnect}, nil
	case KindPlay:
		cmd := make([]byte, 1)
		if err := readFull(r, cmd); err != nil {
			return RequestFrame{}, err
		}
		return RequestFrame{Kind: KindPlay, Play: Play{Command: cmd[0]}}, nil
	default:
		return RequestFrame{}, ErrorUnknownKind.Error()
	}
}

// WriteBoard encodes and writes a BOARD frame.
func WriteBoard(w io.Writer, b Board) error {
	if int32(len(b.Cells)) != b.Width*b.Height {
		return ErrorCellBufferSize.Error()
	}

	buf := make([]byte, 1+4*6+len(b.Cells))
	buf[0] = byte(KindBoard)
	binary.LittleEndian.PutUint32(buf[1:5], uint32(b.Width))
	binary.LittleEndian.PutUint32(buf[5:9], uint32(b.Height))
	binary.LittleEndian.PutUint32(buf[9:13], uint32(b.Tempo))
	binary.LittleEndian.PutUint32(buf[13:17], uint32(b.Victory))
	binary.LittleEndian.PutUint32(buf[17:21], uint32(b.GameOver))
	binary.LittleEndian.PutUint32(buf[21:25], uint32(b.TotalPoints))
	copy(buf[25:], b.Cells)

	return writeFull(w, buf)
}

// ReadBoard reads and decodes a BOARD frame, including its opcode byte.
func ReadBoard(r io.Reader) (Board, error) {
	op := make([]byte, 1)
	if err := readFull(r, op); err != nil {
		return Board{}, err
	}
	if Kind(op[0]) != KindBoard {
		return Board{}, ErrorUnknownKind.Error()
	}

	head := make([]byte, 4*6)
	if err := readFull(r, head); err != nil {
		return Board{}, err
	}

	b := Board{
		Width:       int32(binary.LittleEndian.Uint32(head[0:4])),
		Height:      int32(binary.LittleEndian.Uint32(head[4:8])),
		Tempo:       int32(binary.LittleEndian.Uint32(head[8:12])),
		Victory:     int32(binary.LittleEndian.Uint32(head[12:16])),
		GameOver:    int32(binary.LittleEndian.Uint32(head[16:20])),
		TotalPoints: int32(binary.LittleEndian.Uint32(head[20:24])),
	}

	n := b.Width * b.Height
	if n < 0 {
		return Board{}, ErrorCellBufferSize.Error()
	}

	b.Cells = make([]byte, n)
	if err := readFull(r, b.Cells); err != nil {
		return Board{}, err
	}

	return b, nil
}

func writeFull(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return ErrorShortWrite.Error()
	}
	return nil
}

func readFull(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return ErrorShortRead.Error(err)
	}
	if n != len(buf) {
		return ErrorShortRead.Error()
	}
	return nil
}
