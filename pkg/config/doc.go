// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package config loads and validates headerrc configuration.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |           |           |           |
	+-----+-----+ +---+---+ +-----+-----+ +---+---+
	|   YAML    | |  HCL  | |   JSON    | | .rc   |
	|  Parser   | |Parser | |  Parser   | |Y or H |
	+-----------+ +-------+ +-----------+ +-------+

🎯 Purpose:
- Points at the .licenseheader definition file
- Holds the keyword policy (require_keywords, keywords)
- Picks the line ending used for files that have none
- Extends or replaces the built-in language table
- Supplies extra tokens (%Company%, %Project%, ...)
- Lists ignore patterns (doublestar globs)

🔄 Flow:
1. LoadConfig reads the file and picks a parser by extension
2. Unknown fields are rejected by every format
3. Validate fills in defaults and builds the language registry
4. Registry() and Policy() hand the result to the batch coordinator

🔍 Example:

	# .headerrc (YAML)
	definition: LICENSE.licenseheader
	keywords: copyright, license
	default_line_ending: lf
	properties:
	  - token: "%Company%"
	    value: walteh LLC
	ignore_patterns:
	  - "vendor/**"
	languages:
	  - extensions: [".foo"]
	    line_comment: "//"

	cfg, err := config.LoadConfig(ctx, ".headerrc")
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
*/
package config
