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

package utils

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Printer emits one output of an estimation run, a report on the console or
// in a file, or metadata rows in a run archive.
//
//go:generate mockgen -source print.go -destination print_mock.go -package utils
type Printer interface {
	Print() error
	Close()
}

type Printers struct {
	printers []Printer
}

func (ps *Printers) Print() {
	for _, p := range ps.printers {
		err := p.Print()
		if err != nil {
			panic(err)
		}
	}
}

func (ps *Printers) Close() {
	for _, p := range ps.printers {
		p.Close()
	}
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func NewCustomPrinters(printers []Printer) *Printers {
	return &Printers{printers}
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// PrinterToWriter writes to any io.Writer
// Wrap f, returns a string to be printed
type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	if err != nil {
		return err
	}
	return nil
}

func (p *PrinterToWriter) Close() {

}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func NewPrinterToConsole(f func() string) *PrinterToWriter {
	return &PrinterToWriter{os.Stdout, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

func (ps *Printers) AddPrinterToConsole(isDisabled bool, f func() string) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrinterToConsole(f))
}

// PrinterToFile writes to a File
// Wrap f, returns a string to be printed
type PrinterToFile struct {
	filepath string
	f        func() string
}

func (p *PrinterToFile) Print() (err error) {
	file, err := os.OpenFile(p.filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to print to file %s; %v", p.filepath, err)
	}

	defer func(file *os.File) {
		e := file.Close()
		if e != nil {
			err = errors.Join(err, e)
		}
	}(file)
	_, err = file.WriteString(p.f())
	if err != nil {
		return err
	}
	return nil
}

func (p *PrinterToFile) Close() {

}

func NewPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, f}
}

func (ps *Printers) AddPrinterToFile(filepath string, f func() string) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrinterToFile(filepath, f))
	}
	return ps
}

// PrinterToDb writes by inserting rows into DB
// Wrap f, returns an array of values to be inserted
type PrinterToDb struct {
	db     *sql.DB
	insert string
	f      func() [][]any
}

func (p *PrinterToDb) Print() error {
	// Transaction is used to improve efficiency over bulk insert
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("unable to begin a transaction; %v", err)
	}

	stmt, err := p.db.Prepare(p.insert)
	if err != nil {
		return fmt.Errorf("unable to prepare statement %s; %v", p.insert, err)
	}

	values := p.f()
	for _, value := range values {
		_, err = tx.Stmt(stmt).Exec(value...)
		if err != nil {
			e := tx.Rollback()
			if e != nil {
				err = errors.Join(err, e)
			}
			return err
		}
	}

	defer func(stmt *sql.Stmt) {
		e := stmt.Close()
		if e != nil {
			err = errors.Join(err, e)
		}
	}(stmt) // Stmt to be open/close each time a transaction happens
	return tx.Commit()
}

func (p *PrinterToDb) Close() {
	err := p.db.Close()
	if err != nil {
		panic(err)
	}
}

func NewPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*PrinterToDb, error) {
	var err error

	db, err := sql.Open("sqlite3", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to sqlite3 %s; %v", conn, err)
	}

	_, err = db.Exec(create)
	if err != nil {
		return nil, fmt.Errorf("failed to create/replace table on %s; %v", conn, err)
	}

	_, err = db.Exec("PRAGMA synchronous = OFF")
	if err != nil {
		return nil, err
	} // so that insert does not block
	_, err = db.Exec("PRAGMA journal_mode = MEMORY")
	if err != nil {
		return nil, err
	} // improve efficiency - no intermediate write to file

	return &PrinterToDb{db, insert, f}, nil
}

func (ps *Printers) AddPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) *Printers {
	if conn != "" {
		p, err := NewPrinterToSqlite3(conn, create, insert, f)
		if err != nil {
			return ps
		}
		return ps.AddPrinter(p)
	}
	return ps
}

