package main

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseInts(t *testing.T) {
	Convey("Given a comma-separated loop-count string", t, func() {
		Convey("An empty string parses to no counts", func() {
			out, err := parseInts("")
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
		})
		Convey("A well-formed list parses in order", func() {
			out, err := parseInts("0,0,1,2")
			So(err, ShouldBeNil)
			So(out, ShouldResemble, []int{0, 0, 1, 2})
		})
		Convey("A malformed entry is rejected", func() {
			_, err := parseInts("0,x,1")
			So(err, ShouldNotBeNil)
		})
	})
}
