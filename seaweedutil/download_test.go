/*
Copyright © 2023 the Seaweed Scale-Up authors.
This file is part of the Seaweed Scale-Up Model.

The Seaweed Scale-Up Model is free software: you can redistribute it and/or
modify it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Seaweed Scale-Up Model is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Seaweed Scale-Up Model.  If not, see <http://www.gnu.org/licenses/>.
*/

package seaweedutil

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInput(t *testing.T) {
	want, err := ioutil.ReadFile("testdata/monthly.csv")
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.FileServer(http.Dir("testdata")))
	defer srv.Close()

	for _, p := range []string{
		"testdata/monthly.csv",
		srv.URL + "/monthly.csv",
		"file://testdata/monthly.csv",
	} {
		t.Run(p, func(t *testing.T) {
			r, err := openInput(context.Background(), p)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			have, err := ioutil.ReadAll(r)
			if err != nil {
				t.Fatal(err)
			}
			if string(have) != string(want) {
				t.Errorf("have %q, want %q", have, want)
			}
		})
	}

	if _, err := openInput(context.Background(), srv.URL+"/missing.csv"); err == nil {
		t.Error("expected an error for a missing URL")
	}
	if _, err := openInput(context.Background(), "testdata/missing.csv"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadScenariosHTTP(t *testing.T) {
	srv := httptest.NewServer(http.FileServer(http.Dir("testdata/data")))
	defer srv.Close()
	s, err := LoadScenarios(context.Background(), srv.URL+"/", []string{"test"})
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 1 || s[0].Name != "test" {
		t.Fatalf("have %+v", s)
	}
	if c := s[0].Growth.Clusters(); len(c) != 2 {
		t.Errorf("have clusters %v", c)
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct{ dir, want string }{
		{dir: "data", want: filepath.Join("data", "150tg", GrowthFile)},
		{dir: "gs://bucket/data/", want: "gs://bucket/data/150tg/" + GrowthFile},
		{dir: "https://example.com/data", want: "https://example.com/data/150tg/" + GrowthFile},
	}
	for _, test := range tests {
		if have := joinPath(test.dir, "150tg", GrowthFile); have != test.want {
			t.Errorf("%s: have %s, want %s", test.dir, have, test.want)
		}
	}
}

func TestIsBlob(t *testing.T) {
	for p, want := range map[string]bool{
		"gs://a/b":  true,
		"s3://a/b":  true,
		"file://a":  true,
		"http://a":  false,
		"local/dir": false,
	} {
		if have := IsBlob(p); have != want {
			t.Errorf("%s: have %v, want %v", p, have, want)
		}
	}
}

func TestLoadParametersRemote(t *testing.T) {
	srv := httptest.NewServer(http.FileServer(http.Dir("../testdata")))
	defer srv.Close()

	for _, p := range []string{"../testdata/constants.toml", srv.URL + "/constants.toml"} {
		t.Run(p, func(t *testing.T) {
			params, err := LoadParameters(context.Background(), p)
			if err != nil {
				t.Fatal(err)
			}
			if v, ok := params.Get("calorie_demand"); !ok || v != 2200 {
				t.Errorf("calorie_demand: have %g", v)
			}
		})
	}

	Cfg.Set("config", "testdata/config.toml")
	Cfg.Set("Constants", srv.URL+"/constants.toml")
	defer Cfg.Set("Constants", "../testdata/constants.toml")
	out := execute(t, "parameters")
	if !strings.Contains(out, "seedling_line_per_area = 128000") {
		t.Errorf("have %q", out)
	}

	if _, err := LoadParameters(context.Background(), srv.URL+"/missing.toml"); err == nil {
		t.Error("expected an error for a missing URL")
	}
}
