// Package acquisition turns a classified URL into locally addressable media.
//
// The Engine resolves the fetch tool through the binary locator, downloads one
// video to a timestamp-named file, resolves the uploader's handle, and fetches
// a thumbnail whose extension is only known after the tool runs. Video failures
// are fatal and come back as *Error values carrying a user-facing category;
// username and thumbnail failures degrade to placeholders and are logged.
package acquisition
