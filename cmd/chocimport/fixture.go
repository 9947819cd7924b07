// # cmd/chocimport/fixture.go
package main

// selfTest exercises every usage style the analyzer recognizes. Passing "-"
// on the command line analyzes this module and prints its corrected source.
const selfTest = `import choc, {set_content, on, DOM} from "https://rosuav.github.io/choc/factory.js";
const {FORM, LABEL, INPUT} = choc; //autoimport
const {DIV} = choc;
const f1 = () => {HP()}, f2 = () => PRE(), f3 = () => {return B("bold");};
let f4 = "test";
function update() {
	let el = FORM(LABEL(["Speak thy mind:", INPUT({name: "thought"})]))
	set_content("main", [el, f1(), f2(), f3(), f4(), f5()])
}
f4 = () => DIV(); //Won't be found (violates DBU)
function f5() {return SPAN();}
export function COMPONENT(x) {return FIGURE(x.name);}
function NONCOMPONENT(x) {return FIGCAPTION(x.name);} //Non-exported won't be detected unless called
`
