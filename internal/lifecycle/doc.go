// Package lifecycle owns the candidate workflow: duplicate-checked submission,
// judging, contact sub-status tracking, memos and deletion.
//
// The Controller coordinates the source classifier, the acquisition engine and
// a Repository. It performs the duplicate URL check before acquisition so a
// rejected submission never touches the fetch tool or the asset directories.
// The check and the insert are not atomic; two concurrent submissions of the
// same URL can both succeed.
package lifecycle
