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

// Command seaweed is a command-line interface for the seaweed scale-up model.
package main

import (
	"fmt"
	"os"

	"github.com/allfed/seaweed/seaweedutil"
)

func main() {
	if err := seaweedutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
