// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
package err

type Error interface {
	Error() string  // proxy to String() (to implement error interface)
	String() string // human readable string
	Child() Error   // may be nil
}
