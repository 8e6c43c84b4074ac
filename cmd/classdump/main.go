// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command classdump prints the structure of a .class file to stdout. It is
// a thin presentation layer over the classfile package and contains no
// parsing logic of its own.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/javaclass/classfile"
)

var (
	wantFields     bool
	wantMethods    bool
	wantAttributes bool
	wantAnomalies  bool
	all            bool
)

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpOne(filename string) {
	cf, err := classfile.NewFile(filename, &classfile.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filename, err)
		return
	}
	defer cf.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s\n", filename)
	fmt.Fprintf(w, "version\t%s\n", cf.Version.String())
	fmt.Fprintf(w, "access_flags\t0x%04X\n", uint16(cf.AccessFlags))
	fmt.Fprintf(w, "this_class\t%s\n", cf.ThisClassName)
	if cf.SuperClassName != "" {
		fmt.Fprintf(w, "super_class\t%s\n", cf.SuperClassName)
	}
	fmt.Fprintf(w, "interfaces\t%d\n", len(cf.Interfaces))
	w.Flush()

	if wantFields || all {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FIELD\tDESCRIPTOR\tACCESS")
		for _, f := range cf.Fields {
			fmt.Fprintf(w, "%s\t%d\t0x%04X\n", f.Name, f.DescriptorIndex, uint16(f.AccessFlags))
		}
		w.Flush()
	}

	if wantMethods || all {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tDESCRIPTOR\tACCESS")
		for _, m := range cf.Methods {
			desc := ""
			if m.Descriptor != nil {
				desc = m.Descriptor.String()
			}
			fmt.Fprintf(w, "%s\t%s\t0x%04X\n", m.Name, desc, uint16(m.AccessFlags))
		}
		w.Flush()
	}

	if wantAttributes || all {
		for _, a := range cf.Attributes {
			fmt.Printf("attribute\t%T\n", a)
		}
	}

	if wantAnomalies || all {
		for _, msg := range cf.Anomalies {
			fmt.Printf("anomaly\t%s\n", msg)
		}
	}
}

func dump(cmd *cobra.Command, args []string) {
	path := args[0]
	if !isDirectory(path) {
		dumpOne(path)
		return
	}
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			dumpOne(p)
		}
		return nil
	})
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "classdump",
		Short: "Inspects the structure of JVM class files",
		Long:  "classdump decodes a .class file's constant pool, fields, methods, and attributes.",
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <file-or-dir>",
		Short: "Dumps one class file or every .class file under a directory",
		Args:  cobra.ExactArgs(1),
		Run:   dump,
	}
	dumpCmd.Flags().BoolVarP(&wantFields, "fields", "f", false, "print fields")
	dumpCmd.Flags().BoolVarP(&wantMethods, "methods", "m", false, "print methods")
	dumpCmd.Flags().BoolVarP(&wantAttributes, "attributes", "a", false, "print class attributes")
	dumpCmd.Flags().BoolVarP(&wantAnomalies, "anomalies", "", false, "print anomalies")
	dumpCmd.Flags().BoolVarP(&all, "all", "", false, "print everything")

	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
