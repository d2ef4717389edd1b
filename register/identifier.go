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
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/0xsoniclabs/montecarlo/utils"
)

// RunIdentity identifies one estimation run by its launch time and configuration.
// Two runs started with the same configuration at the same second are the same run.
type RunIdentity struct {
	Timestamp int64
	Cfg       *utils.Config
}

func MakeRunIdentity(t int64, cfg *utils.Config) *RunIdentity {
	return &RunIdentity{
		Timestamp: t,
		Cfg:       cfg,
	}
}

// GetId returns a stable hex id derived from the run identity.
// An explicitly configured OverwriteRunId takes priority over the derived id.
func (id *RunIdentity) GetId() (string, error) {
	if id.Cfg.OverwriteRunId != "" {
		return id.Cfg.OverwriteRunId, nil
	}

	info, err := id.fetchConfigInfo()
	if err != nil {
		return "", err
	}

	return id.hashIdentity(info), nil
}

// fetchConfigInfo flattens the run configuration into printable key/value pairs.
func (id *RunIdentity) fetchConfigInfo() (map[string]string, error) {
	if id.Cfg == nil {
		return nil, fmt.Errorf("run identity carries no configuration")
	}

	return map[string]string{
		"AppName":        id.Cfg.AppName,
		"CommandName":    id.Cfg.CommandName,
		"RegisterRun":    id.Cfg.RegisterRun,
		"OverwriteRunId": id.Cfg.OverwriteRunId,
		"NumSamples":     strconv.FormatUint(id.Cfg.NumSamples, 10),
		"StepSize":       strconv.FormatUint(id.Cfg.StepSize, 10),
		"RandomSeed":     strconv.FormatInt(id.Cfg.RandomSeed, 10),
		"CsvFile":        id.Cfg.CsvFile,
		"Intermediate":   strconv.FormatBool(id.Cfg.Intermediate),
		"Progress":       strconv.FormatBool(id.Cfg.Progress),
		"TrackProgress":  strconv.FormatBool(id.Cfg.TrackProgress),
		"Timestamp":      strconv.FormatInt(id.Timestamp, 10),
	}, nil
}

// hashIdentity digests the key/value pairs in key order so that the id does not
// depend on map iteration order.
func (id *RunIdentity) hashIdentity(info map[string]string) string {
	keys := maps.Keys(info)
	sort.Strings(keys)

	var str string
	for _, k := range keys {
		str += fmt.Sprintf("%s=%s;", k, info[k])
	}

	digest := md5.Sum([]byte(str))
	return hex.EncodeToString(digest[:])
}
