package main

import (
	"github.com/cpmech/bspcsg/bsp"
	"github.com/cpmech/bspcsg/label"
	"github.com/cpmech/bspcsg/offio"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// read input parameters
	meshAPath, _ := io.ArgToFilename(0, "", ".off", true)
	opcode := io.ArgToString(1, "0")
	meshBPath, _ := io.ArgToFilename(2, "", ".off", false)
	outPath, _ := io.ArgToFilename(3, "", ".off", false)
	if outPath == "" {
		outPath = io.FnKey(meshAPath) + ".result.off"
	}

	op := byte('0')
	if len(opcode) > 0 {
		op = opcode[0]
	}

	io.PfWhite("\nbspcsg -- exact polyhedral boolean kernel\n\n")
	io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
		"first input mesh", "meshA", meshAPath,
		"boolean operator (U/I/D/0)", "opcode", opcode,
		"second input mesh (ignored for repair)", "meshB", meshBPath,
		"result OFF path", "out", outPath,
	))

	meshA, err := offio.Read(meshAPath)
	if err != nil {
		chk.Panic("could not read meshA: %v", err)
	}

	var meshB *offio.Mesh
	if op != label.OpRepair {
		if meshBPath == "" {
			chk.Panic("opcode %q requires a second input mesh", opcode)
		}
		meshB, err = offio.Read(meshBPath)
		if err != nil {
			chk.Panic("could not read meshB: %v", err)
		}
	}

	skin, err := bsp.Run(meshA, meshB, op)
	if err != nil {
		chk.Panic("bsp.Run failed:\n%v", err)
	}

	if err := offio.WriteSkin(outPath, skin); err != nil {
		chk.Panic("could not write result: %v", err)
	}
	io.Pf("\nfile <%s> written\n", outPath)
}
