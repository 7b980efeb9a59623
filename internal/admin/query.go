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

package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

const queryTimeout = 5 * time.Second

// PrintSnapshot fetches addr's /snapshot endpoint and renders it as a table
// on out, the pacman-client --query counterpart to the SIGUSR1 text dump.
func PrintSnapshot(addr string, out io.Writer) error {
	client := &http.Client{Timeout: queryTimeout}

	resp, err := client.Get(fmt.Sprintf("http://%s/snapshot", addr))
	if err != nil {
		return ErrorServe.Error(err)
	}
	defer func() { _ = resp.Body.Close() }()

	var entries []scoreEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return ErrorServe.Error(err)
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Rank", "Client ID", "Points"})

	if len(entries) == 0 {
		table.Append([]string{"-", "-", "no active clients"})
	}
	for i, e := range entries {
		table.Append([]string{strconv.Itoa(i + 1), strconv.Itoa(int(e.ClientID)), strconv.Itoa(e.Points)})
	}

	table.Render()
	return nil
}
