package cpu

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/thelolagemann/sm83/internal/mmu"
)

// The single step vectors are not checked in, drop the JSON files into
// testdata/sm83/v1 to run them.
const sm83TestData = "testdata/sm83/v1"

type cpuState struct {
	Pc  int     `json:"pc"`
	Sp  int     `json:"sp"`
	A   int     `json:"a"`
	B   int     `json:"b"`
	C   int     `json:"c"`
	D   int     `json:"d"`
	E   int     `json:"e"`
	F   int     `json:"f"`
	H   int     `json:"h"`
	L   int     `json:"l"`
	Ime int     `json:"ime"`
	RAM [][]int `json:"ram"`
}

type instructionTest struct {
	Name    string            `json:"name"`
	Initial cpuState          `json:"initial"`
	Final   cpuState          `json:"final"`
	Cycles  []json.RawMessage `json:"cycles"`
}

func Test_Instructions(t *testing.T) {
	if _, err := os.Stat(sm83TestData); os.IsNotExist(err) {
		t.Skipf("%s not present", sm83TestData)
	}

	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		switch {
		case !InstructionSet[opcode].Defined(), opcode == 0x10, opcode == 0xCB:
			continue
		}
		runInstructionTest(t, fmt.Sprintf("%02x.json", opcode), opcode != 0xFB)
	}
	for i := 0; i < 256; i++ {
		runInstructionTest(t, fmt.Sprintf("cb %02x.json", i), true)
	}
}

func runInstructionTest(t *testing.T, file string, checkIME bool) {
	path := filepath.Join(sm83TestData, file)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	t.Run(file, func(t *testing.T) {
		t.Parallel()

		tests, err := loadInstructionTests(path)
		if err != nil {
			t.Fatal(err)
		}
		for _, xTest := range tests {
			m := mmu.NewMMU()
			c := NewCPU(m)

			c.A = Register(xTest.Initial.A)
			c.F.SetByte(uint8(xTest.Initial.F))
			c.BC.SetUint16(uint16(xTest.Initial.B<<8 | xTest.Initial.C))
			c.DE.SetUint16(uint16(xTest.Initial.D<<8 | xTest.Initial.E))
			c.HL.SetUint16(uint16(xTest.Initial.H<<8 | xTest.Initial.L))
			c.PC = uint16(xTest.Initial.Pc)
			c.SP = uint16(xTest.Initial.Sp)
			c.IME = xTest.Initial.Ime == 1

			for _, row := range xTest.Initial.RAM {
				m.Write(uint16(row[0]), uint8(row[1]))
			}

			cycles, err := c.Step()
			if err != nil {
				t.Fatalf("%s: %v", xTest.Name, err)
			}

			final := xTest.Final
			registers := []struct {
				name     string
				expected int
				actual   uint8
			}{
				{"A", final.A, c.A},
				{"F", final.F, c.F.Byte()},
				{"B", final.B, c.BC.High()},
				{"C", final.C, c.BC.Low()},
				{"D", final.D, c.DE.High()},
				{"E", final.E, c.DE.Low()},
				{"H", final.H, c.HL.High()},
				{"L", final.L, c.HL.Low()},
			}
			for _, r := range registers {
				if r.actual != uint8(r.expected) {
					t.Errorf("%s: %s expecting %02x, was %02x", xTest.Name, r.name, r.expected, r.actual)
				}
			}
			if c.PC != uint16(final.Pc) {
				t.Errorf("%s: PC expecting %04x, was %04x", xTest.Name, final.Pc, c.PC)
			}
			if c.SP != uint16(final.Sp) {
				t.Errorf("%s: SP expecting %04x, was %04x", xTest.Name, final.Sp, c.SP)
			}
			if checkIME && c.IME != (final.Ime == 1) {
				t.Errorf("%s: IME expecting %d, was %v", xTest.Name, final.Ime, c.IME)
			}
			if int(cycles) != len(xTest.Cycles)*4 {
				t.Errorf("%s: expecting %d cycles, took %d", xTest.Name, len(xTest.Cycles)*4, cycles)
			}

			for _, row := range final.RAM {
				if m.Read(uint16(row[0])) != uint8(row[1]) {
					t.Errorf("%s: RAM expecting %02x at %04x, was %02x", xTest.Name, row[1], row[0], m.Read(uint16(row[0])))
				}
			}
		}
	})
}

func loadInstructionTests(jsonFile string) ([]*instructionTest, error) {
	f, err := os.Open(jsonFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var t []*instructionTest
	if err := json.NewDecoder(f).Decode(&t); err != nil {
		return nil, err
	}

	return t, nil
}
