package main

import (
	"encoding/xml"
	"os"

	"github.com/sqltestbench/slt/harness"
	"github.com/sqltestbench/slt/util"
)

// junitSuite/junitCase mirror the de-facto JUnit XML schema most CI systems
// (GitHub Actions, GitLab, Jenkins) consume for a single flat test suite.
type junitSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name    string       `xml:"name,attr"`
	Failure *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

func writeJUnitReport(path string, results []harness.FileResult) error {
	cases := util.TransformSlice(results, resultToJUnitCase)
	suite := junitSuite{Name: "slt", Tests: len(results), Cases: cases}
	for _, r := range results {
		if r.Err != nil {
			suite.Failures++
		}
	}

	out, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return err
	}
	out = append([]byte(xml.Header), out...)
	return os.WriteFile(path, out, 0o644)
}

func resultToJUnitCase(r harness.FileResult) junitCase {
	c := junitCase{Name: r.Path}
	if r.Err != nil {
		c.Failure = &junitFailure{Message: r.Err.Error(), Text: r.Err.Error()}
	}
	return c
}
