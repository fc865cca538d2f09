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

package rule

import (
	"strings"
)

// 📄 Document is the in-memory text of the target file. Rules replace its
// content wholesale; there is no partial or streaming mutation.
type Document struct {
	path    string
	content string
}

// 🏭 NewDocument creates a document from the raw bytes of the file at path
func NewDocument(path string, content []byte) *Document {
	return &Document{
		path:    path,
		content: string(content),
	}
}

// 📍 Path returns the path the document was loaded from
func (d *Document) Path() string {
	return d.path
}

// 📝 Content returns the current text of the document
func (d *Document) Content() string {
	return d.content
}

// 📦 Bytes returns the current text of the document as bytes
func (d *Document) Bytes() []byte {
	return []byte(d.content)
}

// 📑 Lines returns the document split on newlines. A trailing newline
// produces a final empty element, which keeps joins lossless.
func (d *Document) Lines() []string {
	return strings.Split(d.content, "\n")
}

// setContent swaps in the buffer produced by a rule application
func (d *Document) setContent(content string) {
	d.content = content
}

// setLines swaps in a line-form buffer produced by a splice
func (d *Document) setLines(lines []string) {
	d.content = strings.Join(lines, "\n")
}
