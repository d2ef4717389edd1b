// Copyright 2025 Sonic Labs
// This file is part of Montecarlo, a Monte Carlo experiment suite for Sonic
//
// Montecarlo is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Montecarlo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Montecarlo. If not, see <http://www.gnu.org/licenses/>.

package register

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/montecarlo/utils"
)

const (
	MetadataCreateTableIfNotExist = `
		CREATE TABLE IF NOT EXISTS metadata (
			runId text,
			key text,
			value text,
			PRIMARY KEY (runId, key)
		)
	`
	MetadataInsertOrReplace = `
		INSERT or REPLACE INTO metadata (
			runId, key, value
		) VALUES (
			?, ?, ?
		)
	`
)

// FetchInfo gathers descriptive key/value pairs from the environment.
type FetchInfo func() (map[string]string, error)

// RunMetadata describes one archived run. Meta holds anything worth keeping
// next to the results, from configuration values to hardware details.
type RunMetadata struct {
	Id   string
	Meta map[string]string
	Ps   *utils.Printers
}

// MakeRunMetadata collects metadata about the run identified by id and prepares
// a printer into the run archive at connection. Environment entries overwrite
// configuration entries of the same name.
func MakeRunMetadata(connection string, id *RunIdentity, fetchEnvInfo FetchInfo) (*RunMetadata, error) {
	rm := &RunMetadata{
		Meta: map[string]string{},
		Ps:   utils.NewPrinters(),
	}

	runId, err := id.GetId()
	if err != nil {
		return nil, fmt.Errorf("failed to derive run id; %v", err)
	}
	rm.Id = runId

	cfgInfo, err := id.fetchConfigInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run configuration; %v", err)
	}
	for k, v := range cfgInfo {
		rm.Meta[k] = v
	}

	envInfo, err := fetchEnvInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch environment info; %v", err)
	}
	for k, v := range envInfo {
		rm.Meta[k] = v
	}

	rm.Ps.AddPrinterToSqlite3(rm.sqlite3(connection))
	return rm, nil
}

func (rm *RunMetadata) Print() {
	rm.Ps.Print()
}

func (rm *RunMetadata) Close() {
	rm.Ps.Close()
}

// sqlite3 returns the arguments with which the metadata printer is registered.
func (rm *RunMetadata) sqlite3(conn string) (string, string, string, func() [][]any) {
	return conn, MetadataCreateTableIfNotExist, MetadataInsertOrReplace,
		func() [][]any {
			values := [][]any{}
			for k, v := range rm.Meta {
				values = append(values, []any{rm.Id, k, v})
			}
			return values
		}
}

// FetchUnixInfo probes the host for hardware and software details worth
// archiving next to a run. Probes not available on the host report "unknown".
func FetchUnixInfo() (map[string]string, error) {
	return fetchUnixInfo(NewShell())
}

func fetchUnixInfo(sh ShellExecutor) (map[string]string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := map[string]string{
		"GoVersion": runtime.Version(),
		"Arch":      runtime.GOARCH,
		"NumCpu":    strconv.Itoa(runtime.NumCPU()),
		"Hostname":  hostname,
	}

	probes := map[string]string{
		"Processor": "cat /proc/cpuinfo | grep 'model name' | head -n 1 | awk -F': ' '{print $2}'",
		"Memory":    "free | grep Mem | awk '{printf(\"%.0f GB\", $2/1024/1024)}'",
		"Disks":     "df -h --total | tail -n 1 | awk '{print $2}'",
		"Os":        "lsb_release -d | awk -F'\t' '{print $2}'",
		"Kernel":    "uname -r",
		"IpAddress": "curl -s api.ipify.org",
	}
	for key, cmd := range probes {
		out, err := sh.Command("bash", "-c", cmd)
		if err != nil {
			info[key] = "unknown"
			continue
		}
		info[key] = strings.TrimSpace(string(out))
	}

	return info, nil
}
