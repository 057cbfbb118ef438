/*
Package session keeps the live page instances of the site.

Every page load creates a Page that owns one quote wizard, the contact and
newsletter forms and the notification presenter they share. Nothing survives
the page: a reload creates a new instance, and pages nobody touched for a
while are closed and forgotten, which stands in for the browser unloading
them.
*/
package session
