// Package document reads and rewrites the HTML pages that carry protected
// fragments.
//
// A protected fragment is any element whose class list contains "secret".
// Its text is the base64 payload and its "tags" and "nonces" attributes list
// the layers in declared order, separated by ";". Fragments are numbered
// secret-0, secret-1 and so on in document order.
//
// The key menu is the element with id "tag-keys-menu". Each li inside it is
// a key test: the ".tag-keys-label" text names the tag, the input receives
// the verdict, and the ".tag-keys-test" element is a fixture encrypted under
// that tag alone.
//
// Document implements unlock.Renderer. Replaced fragments are parsed as HTML
// in the context of their parent element.
package document
