/*
 * pylox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Command pylox is the Lox interpreter: run it with no arguments for an
interactive prompt, or with a single script path to run a file once.
*/
package main

import (
	"os"

	"github.com/krotik/pylox/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout))
}
