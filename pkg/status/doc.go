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
Package status owns file storage and outcome tracking for headerrc.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +-----+-----+
	|   Files   |           |  Summary  |
	| (atomic)  |           |  (UI/UX)  |
	+-----------+           +-----------+

🎯 Purpose:
- Reads files together with their metadata (mode, modification time)
- Writes rewritten files atomically: temp file in the same directory, then rename
- Keeps the original file mode on rewrite
- Tracks what the header engine did to each file and formats it for humans

🔄 Flow:
1. The batch coordinator reads a file through FileManager
2. The header engine rewrites it in memory
3. Changed content goes back through WriteFileAtomic
4. The outcome is tracked and later summarized

🔍 Example:

	mgr := status.New("")

	content, info, err := mgr.ReadFile(ctx, "main.go")
	err = mgr.WriteFileAtomic(ctx, "main.go", newContent, info.Mode().Perm())

	mgr.TrackFile(ctx, status.FileInfo{Path: "main.go", Action: header.ActionInserted})
	fmt.Println(status.NewDefaultFileFormatter().FormatSummary(mgr.Summary()))
*/
package status
